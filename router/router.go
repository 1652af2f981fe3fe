// Package router resolves URLs to page handlers on the server and in the browser model.
//
// A Router owns a [route.Table], the current resolved route, the current query and a base path.
// On the server, construct one Router per request and call SetURL before Start.
// In the browser model, construct one Router for the process with WithLocation
// and call Start on every navigation.
package router

import (
	"context"
	"net/url"
	"strings"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/query"
	"github.com/xy-planning-network/storefront/route"
)

// origin resolves relative URLs so their path and query can be read.
const origin = "http://localhost"

// A Locator reports the live location a Router resolves when no URL was set with SetURL.
type Locator interface {
	Location() string
}

// A Router resolves URLs against registered routes and notifies subscribers of each resolution.
//
// A Router is not safe for concurrent use.
type Router struct {
	baseURL   string
	routes    *route.Table
	current   *route.Resolved
	query     query.Values
	ssrURL    string
	loc       Locator
	listeners []func()
	logger    logger.Logger
}

// An Option configures a *Router when constructing it.
type Option func(*Router)

// WithLocation sets the Locator a Router falls back on when no URL is set.
func WithLocation(loc Locator) Option {
	return func(r *Router) {
		r.loc = loc
	}
}

// WithLogger sets the logger.Logger a Router reports resolutions to.
func WithLogger(l logger.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// New constructs a *Router under baseURL.
// A trailing slash on baseURL is dropped.
func New(baseURL string, opts ...Option) *Router {
	baseURL = strings.TrimSuffix(baseURL, "/")
	r := &Router{
		baseURL: baseURL,
		routes:  route.NewTable(baseURL),
		query:   make(query.Values),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logger.NewDiscard()
	}

	return r
}

// AddRoute registers handler under pattern.
// Routes resolve in the order they are first added.
//
// Adding routes after the first call to Start is unsupported.
func (r *Router) AddRoute(pattern string, handler any) {
	r.routes.Register(pattern, handler)
}

// SetURL sets the URL Start resolves, overriding any Locator,
// and parses its query.
// If rawURL cannot be parsed, the query is empty.
func (r *Router) SetURL(rawURL string) {
	r.ssrURL = rawURL
	u, err := parseURL(rawURL)
	if err != nil {
		r.query = make(query.Values)
		return
	}

	r.query = query.Parse(u.RawQuery)
}

// Start resolves the active URL and notifies every subscriber, in the order they subscribed.
//
// The active URL is the one set with SetURL, otherwise the Locator's location,
// otherwise the base URL.
// Start may be called any number of times;
// each call replaces the resolved route.
func (r *Router) Start() {
	target := r.ssrURL
	if target == "" && r.loc != nil {
		target = r.loc.Location()
		if u, err := parseURL(target); err == nil {
			r.query = query.Parse(u.RawQuery)
		}
	}

	if target == "" {
		target = r.baseURL
	}

	r.current = r.resolve(target)
	if r.current == nil {
		r.logger.Debug("no route matched", &logger.LogContext{Data: map[string]any{"url": target}})
	} else {
		r.logger.Debug("resolved route", &logger.LogContext{Data: map[string]any{"url": target, "route": r.current.Path}})
	}

	for _, fn := range r.listeners {
		fn()
	}
}

// Subscribe adds fn to the functions called every time Start resolves.
// fn reads the Router's state through its accessors.
func (r *Router) Subscribe(fn func()) {
	r.listeners = append(r.listeners, fn)
}

// Reset clears the URL, query and resolved route,
// leaving routes and subscribers in place.
func (r *Router) Reset() {
	r.ssrURL = ""
	r.current = nil
	r.query = make(query.Values)
}

// BaseURL returns the base URL without a trailing slash.
func (r *Router) BaseURL() string { return r.baseURL }

// Route returns the resolved route or nil if none matched.
func (r *Router) Route() *route.Resolved { return r.current }

// Params returns the parameters of the resolved route.
// If no route resolved, Params returns an empty map.
func (r *Router) Params() map[string]string {
	if r.current == nil || r.current.Params == nil {
		return map[string]string{}
	}

	return r.current.Params
}

// Target returns the handler of the resolved route or nil if none matched.
func (r *Router) Target() any {
	if r.current == nil {
		return nil
	}

	return r.current.Handler
}

// Query returns the current query.
func (r *Router) Query() query.Values { return r.query }

// SetQuery replaces the current query.
// SetQuery neither resolves nor notifies subscribers.
func (r *Router) SetQuery(q query.Values) {
	if q == nil {
		q = make(query.Values)
	}

	r.query = q
}

// URL joins the base URL and path, appending the current query when withQuery is true.
func (r *Router) URL(path string, withQuery bool) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if !withQuery {
		return r.baseURL + path
	}

	return query.URL(r.baseURL+path, r.query)
}

func (r *Router) resolve(target string) *route.Resolved {
	u, err := parseURL(target)
	if err != nil {
		return nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	resolved, ok := r.routes.Resolve(path)
	if !ok {
		return nil
	}

	return resolved
}

func parseURL(raw string) (*url.URL, error) {
	base, _ := url.Parse(origin)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	return base.ResolveReference(u), nil
}

// NewContext returns a copy of ctx carrying r.
func NewContext(ctx context.Context, r *Router) context.Context {
	return context.WithValue(ctx, storefront.RouterKey, r)
}

// FromContext retrieves the *Router carried by ctx.
func FromContext(ctx context.Context) (*Router, bool) {
	r, ok := ctx.Value(storefront.RouterKey).(*Router)
	return r, ok && r != nil
}
