/*
Package template parses the storefront's HTML templates.

Templates are read from the working directory first
and fall back to those embedded under tmpl/.
The page shell, tmpl/index.html, renders once into an ssr.Shell;
page templates render on every request with the data their loaders return.
*/
package template
