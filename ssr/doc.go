/*
Package ssr renders storefront pages on the server.

A [Renderer] resolves a request URL against the declared routes,
runs the matched handler's [Loader] if it has one,
and returns a [Result] holding the head markup, a deferred body render and the loaded data.
A fresh [router.Router] is built for every call to [Renderer.Render],
so concurrent renders never share resolution state.

A handler is any value.
The Renderer inspects it for these optional capabilities:

	Loader      Load(ctx) (any, error)       data the page needs, loaded before rendering
	Component   Render(w, data) error        body markup
	Header      Head(data) string            head markup
	StatusCoder StatusCode() int             HTTP status for the page

A [Shell] substitutes a Result into a static page containing the
<!--app-head--> and <!--app-html--> markers,
embedding the data as a window.__INITIAL_DATA__ assignment the client hydrates from.
*/
package ssr
