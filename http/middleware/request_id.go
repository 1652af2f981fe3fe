package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/storefront"
)

// RequestIDHeader echoes the request's ID back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under [storefront.RequestIDKey]
// and sets it on the response's [RequestIDHeader].
//
// A valid uuid already set on the incoming request's [RequestIDHeader] is reused.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), storefront.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
