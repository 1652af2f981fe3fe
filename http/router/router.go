package router

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources under a storefront's base path.
type Router struct {
	Env           storefront.Environment
	base          string
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	root          *mux.Router
	r             *mux.Router
}

// New constructs a [*Router] for the given environment
// handling requests under base.
//
// base is expected in the form [storefront.EnvVarOrBasePath] returns:
// empty, or a leading slash and no trailing slash.
func New(env storefront.Environment, base string, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	root := mux.NewRouter()
	r := root
	if base != "" {
		r = root.PathPrefix(base).Subrouter()
	}

	return &Router{Env: env, base: base, logReq: logReq, root: root, r: r}
}

// Base returns the path every route is registered under.
func (r *Router) Base() string { return r.base }

// CatchAll funnels every GET and HEAD request under the base path
// not matched by another route to handler.
//
// CatchAll ought to be registered last.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Methods(http.MethodGet, http.MethodHead).Handler(
		middleware.Chain(handler, r.everyReqStack...),
	)
}

// HandleBase sends GET and HEAD requests for the bare base path,
// e.g.: /shop rather than /shop/, to handler.
// Without a base path, HandleBase does nothing.
func (r *Router) HandleBase(handler http.HandlerFunc) {
	if r.base == "" {
		return
	}

	r.root.Path(r.base).Methods(http.MethodGet, http.MethodHead).Handler(
		middleware.Chain(handler, r.everyReqStack...),
	)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.root.NotFoundHandler = middleware.Chain(handler, r.everyReqStack...)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter{}, r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.root.ServeHTTP(w, req)
}

// Static serves the files in filesys under prefix,
// which is relative to the base path, e.g.: "/assets/".
//
// Static files skip the every request stack, only logging requests
// and setting a "Cache-Control" header.
func (r *Router) Static(prefix string, filesys fs.FS) {
	r.r.PathPrefix(prefix).Methods(http.MethodGet, http.MethodHead).Handler(middleware.Chain(
		http.StripPrefix(r.base+prefix, http.FileServer(http.FS(filesys))),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api") handles requests to endpoints like /shop/api/products
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		base:          r.base + prefix,
		root:          r.root,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: append([]middleware.Adapter{}, r.everyReqStack...),
	}
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
