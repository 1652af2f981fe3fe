package ssr

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/query"
	"github.com/xy-planning-network/storefront/route"
	"github.com/xy-planning-network/storefront/router"
)

// A Loader supplies the data a page needs before it renders.
// The context carries the *router.Router resolving the page; see router.FromContext.
type Loader interface {
	Load(ctx context.Context) (any, error)
}

// A Component writes a page's body markup using the loaded data.
type Component interface {
	Render(w io.Writer, data any) error
}

// A Header produces a page's head markup using the loaded data.
type Header interface {
	Head(data any) string
}

// A StatusCoder sets the HTTP status a page responds with.
// Data a Loader returns may also be a StatusCoder; its status takes precedence.
type StatusCoder interface {
	StatusCode() int
}

// Markup is a deferred render unit, invoked with the loaded data
// when the page is substituted into a Shell.
type Markup func(w io.Writer, data any) error

// A Route declares a page handler under a pattern.
type Route struct {
	Pattern string
	Handler any
}

// A Result is what rendering a URL produces.
type Result struct {
	// Head is markup for the document head.
	Head string

	// HTML renders the body. HTML is nil when the handler is not a Component
	// or no route matched.
	HTML Markup

	// Data is what the handler's Loader returned, or nil.
	Data any

	// Status is the HTTP status the page responds with.
	Status int

	// Route is the route that resolved, or nil.
	Route *route.Resolved

	// Target is the handler rendered, or nil.
	Target any

	// Query is the query of the rendered URL.
	Query query.Values
}

// A State is a step of rendering a single URL.
type State int

const (
	Idle State = iota
	RoutesRegistered
	URLSet
	Resolved
	DataLoading
	Rendered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RoutesRegistered:
		return "routes-registered"
	case URLSet:
		return "url-set"
	case Resolved:
		return "resolved"
	case DataLoading:
		return "data-loading"
	case Rendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// A Renderer renders URLs against a fixed list of routes.
//
// A Renderer is safe for concurrent use.
type Renderer struct {
	base     string
	routes   []Route
	notFound any
	logger   logger.Logger
	observe  func(State)
}

// An Option configures a *Renderer when constructing it.
type Option func(*Renderer)

// WithBaseURL sets the base path every route matches under.
func WithBaseURL(base string) Option {
	return func(rd *Renderer) {
		rd.base = base
	}
}

// WithLogger sets the logger.Logger a Renderer uses.
func WithLogger(l logger.Logger) Option {
	return func(rd *Renderer) {
		rd.logger = l
	}
}

// WithNotFound sets the handler rendered when no declared route matches.
// Without one, an unmatched URL renders an empty 404 Result.
func WithNotFound(handler any) Option {
	return func(rd *Renderer) {
		rd.notFound = handler
	}
}

// WithObserver sets a function called with each State a render passes through.
func WithObserver(fn func(State)) Option {
	return func(rd *Renderer) {
		rd.observe = fn
	}
}

// New constructs a *Renderer for routes.
// Routes resolve in the order declared.
func New(routes []Route, opts ...Option) *Renderer {
	rd := &Renderer{routes: append([]Route(nil), routes...)}
	for _, opt := range opts {
		opt(rd)
	}

	if rd.logger == nil {
		rd.logger = logger.NewDiscard()
	}

	if rd.observe == nil {
		rd.observe = func(State) {}
	}

	return rd
}

// Routes returns a copy of the declared routes.
func (rd *Renderer) Routes() []Route {
	return append([]Route(nil), rd.routes...)
}

// Router constructs a *router.Router with every declared route registered.
func (rd *Renderer) Router(opts ...router.Option) *router.Router {
	r := router.New(rd.base, append([]router.Option{router.WithLogger(rd.logger)}, opts...)...)
	for _, rt := range rd.routes {
		r.AddRoute(rt.Pattern, rt.Handler)
	}

	return r
}

// Render resolves rawURL and renders the page it matches.
//
// An unmatched URL is not an error: the Result has a 404 status
// and either the WithNotFound handler or no Target.
// Errors from a Loader return unmodified.
func (rd *Renderer) Render(ctx context.Context, rawURL string) (Result, error) {
	rd.observe(Idle)

	r := rd.Router()
	rd.observe(RoutesRegistered)

	r.SetURL(rawURL)
	rd.observe(URLSet)

	r.Start()
	rd.observe(Resolved)

	res := Result{
		Status: http.StatusOK,
		Route:  r.Route(),
		Target: r.Target(),
		Query:  r.Query(),
	}

	if res.Target == nil {
		res.Status = http.StatusNotFound
		res.Target = rd.notFound
	}

	if res.Target == nil {
		rd.logger.Warn("no route matched and no not found handler set", &logger.LogContext{
			Data: map[string]any{"url": rawURL},
		})
		rd.observe(Rendered)
		return res, nil
	}

	if l, ok := res.Target.(Loader); ok {
		rd.observe(DataLoading)
		start := time.Now()
		data, err := l.Load(router.NewContext(ctx, r))
		if err != nil {
			return Result{}, err
		}

		rd.logger.Debug("loaded page data", &logger.LogContext{
			Data: map[string]any{"url": rawURL, "took": time.Since(start).String()},
		})
		res.Data = data
	}

	if sc, ok := res.Target.(StatusCoder); ok {
		res.Status = sc.StatusCode()
	}

	if sc, ok := res.Data.(StatusCoder); ok {
		res.Status = sc.StatusCode()
	}

	if h, ok := res.Target.(Header); ok {
		res.Head = h.Head(res.Data)
	}

	if c, ok := res.Target.(Component); ok {
		res.HTML = c.Render
	}

	rd.observe(Rendered)
	return res, nil
}
