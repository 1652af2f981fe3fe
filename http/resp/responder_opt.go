package resp

import (
	"net/url"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/ssr"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithEnv sets the environment the Responder answers requests in.
// Outside of development, error responses carry only the status text.
func WithEnv(env storefront.Environment) ResponderOptFn {
	return func(d *Responder) {
		d.env = env
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithRenderer sets the *ssr.Renderer pages are resolved and rendered with.
//
// Page requires this option.
func WithRenderer(rd *ssr.Renderer) ResponderOptFn {
	return func(d *Responder) {
		d.renderer = rd
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for redirecting
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes "/"
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good = &url.URL{Path: "/"}
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}

// WithShell sets the page shell rendered pages are substituted into.
//
// Page requires this option.
func WithShell(sh ssr.Shell) ResponderOptFn {
	return func(d *Responder) {
		d.shell = &sh
	}
}
