package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/storefront"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w    http.ResponseWriter
	r    *http.Request
	code int
	data any
	err  error
	url  *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError, unless a code is already set,
// and stores the error for logging.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		r.err = e
		if r.code == 0 {
			r.code = http.StatusInternalServerError
		}

		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", storefront.ErrMissingData)
		}

		u := *r.url
		q := u.Query()
		q.Set(key, val)
		u.RawQuery = q.Encode()
		r.url = &u
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		r.url = d.rootUrl
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}

		r.url = parsed
		return nil
	}
}
