/*
Package router defines the HTTP boundary of a storefront.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as a thin wrapper around that package.
Everything a storefront serves lives under its base path:
static files, JSON endpoints, and, last of all,
the server-side rendered pages every remaining GET request falls through to.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.
*/
package router
