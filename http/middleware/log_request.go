package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/logger"
)

var maskedParams = []string{"password", "token"}

// LogRequest logs the request's originating IP address, method, requested URL,
// and the status code written in response,
// using the enclosed implementation of logger.Logger.
//
// LogRequest masks the values for the following query parameters:
// - password
// - token
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			h.ServeHTTP(rec, r)

			uri := r.URL.Path
			q := r.URL.Query()
			for _, key := range maskedParams {
				storefront.Mask(q, key)
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri, strconv.Itoa(rec.status())}
			if ip := IPAddress(r.Context()); ip != "" {
				strs = append([]string{ip}, strs...)
			}

			data := map[string]any{
				storefront.LogKindKey: storefront.HTTPLogKind,
				"duration":            time.Since(start).String(),
				"size":                rec.size,
			}
			if id, ok := r.Context().Value(storefront.RequestIDKey).(string); ok {
				data["requestId"] = id
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data})
		})
	}
}

// statusRecorder notes the status code and body size written through it.
type statusRecorder struct {
	http.ResponseWriter
	code int
	size int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.code == 0 {
		sr.code = code
	}

	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.code == 0 {
		sr.code = http.StatusOK
	}

	n, err := sr.ResponseWriter.Write(b)
	sr.size += n
	return n, err
}

// Flush passes through to the wrapped writer when it supports flushing.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) status() int {
	if sr.code == 0 {
		return http.StatusOK
	}

	return sr.code
}
