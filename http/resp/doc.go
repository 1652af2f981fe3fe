/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides four main ways of responding to an HTTP request:
  - rendering a storefront page into the page shell
  - rendering JSON data
  - redirecting
  - reporting an error
*/
package resp
