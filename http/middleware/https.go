package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/storefront"
)

// ForceHTTPS redirects HTTP requests to HTTPS if the environment is not [storefront.Development].
//
// The "X-Forwarded-Proto" header tells whether the client used HTTPS
// when the storefront runs behind a proxy.
func ForceHTTPS(env storefront.Environment) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Forwarded-Proto") == "https" || env.IsDevelopment() {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
