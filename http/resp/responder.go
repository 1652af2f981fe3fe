package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/http/middleware"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/ssr"
)

const responderFrames = 1

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Page
//	Json
//	Redirect
//	Err
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	env    storefront.Environment
	logger logger.Logger

	// Resolves and renders storefront pages
	renderer *ssr.Renderer

	// Page shell rendered pages are substituted into
	shell *ssr.Shell

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Root URL the responder redirects to by default
	rootUrl *url.URL
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		env:     storefront.Production,
		pool:    &sync.Pool{New: func() any { return new(bytes.Buffer) }},
		rootUrl: &url.URL{Path: "/"},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// Outside of development, the body carries only the status text
// so internal details do not leak to clients.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	data := map[string]any{storefront.LogKindKey: storefront.HTTPLogKind, "status": code}
	if ip := middleware.IPAddress(r.Context()); ip != "" {
		data["ip"] = ip
	}

	doer.logger.Error(fmt.Sprint(err), &logger.LogContext{
		Data:    data,
		Error:   err,
		Request: r,
	})

	msg := http.StatusText(code)
	if doer.env.IsDevelopment() && err != nil {
		msg = err.Error()
	}

	http.Error(w, msg, code)
}

// Page resolves the request's URL against the storefront's routes,
// renders the matched page into the page shell
// and writes it with the status the page reports.
//
// An unmatched URL renders with a 404 status.
// A page failing to load its data responds with a 500 status.
func (doer *Responder) Page(w http.ResponseWriter, r *http.Request) error {
	if doer.renderer == nil || doer.shell == nil {
		err := fmt.Errorf("%w: no renderer or shell configured", storefront.ErrBadConfig)
		doer.Err(w, r, err)
		return err
	}

	res, err := doer.renderer.Render(r.Context(), r.URL.RequestURI())
	if err != nil {
		err = fmt.Errorf("cannot render %s: %w", r.URL.Path, err)
		doer.Err(w, r, err)
		return err
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := doer.shell.Execute(b, res); err != nil {
		err = fmt.Errorf("cannot execute shell for %s: %w", r.URL.Path, err)
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(res.Status)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

type jsonSchema struct {
	D any `json:"data"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
// The JSON schema looks like this:
//
//	{
//		"data": {}
//	}
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.err != nil {
		doer.Err(w, r, rr.err, Code(rr.code))
		return rr.err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(jsonSchema{D: rr.data}); err != nil {
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", storefront.ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE: code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request
// in the order they are passed.
//
// Should all options apply successfully, do returns a validly formed *Response.
// Otherwise, do returns the partially formed *Response alongside the first error.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{w: w, r: r}
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return resp, ErrDone
		default:
			if err := opt(*doer, resp); err != nil {
				return resp, err
			}
		}
	}

	return resp, nil
}
