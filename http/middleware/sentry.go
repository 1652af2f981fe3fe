package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/storefront"
)

// ReportPanic recovers and reports panics through sentryhttp
// when the environment is not [storefront.Development].
//
// In development, panics are left alone so the stack trace reaches the terminal.
func ReportPanic(env storefront.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
