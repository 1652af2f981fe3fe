package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/http/middleware"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		hm       http.Header
		expected string
	}{
		{"No-Match", make(http.Header), "0.0.0.0"},
		{
			"Only-Private-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "192.168.0.0")
				return h
			}(),
			"0.0.0.0",
		},
		{
			"Only-Public-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Get-Before-Proxy",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.0.0.1,1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Skip-Shared",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "8.8.8.8, 100.64.1.1")
				return h
			}(),
			"8.8.8.8",
		},
		{
			"Skip-Private-IPv6",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "2001:4860:4860::8888, fd00::1")
				return h
			}(),
			"2001:4860:4860::8888",
		},
		{
			"Get-First-Public",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.255.255.255,8.8.8.8,1.1.1.1,172.16.0.0")
				return h
			}(),
			"1.1.1.1",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.GetIPAddress(tc.hm))
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "8.8.8.8, 10.0.0.1")

	var actual string

	// Act
	middleware.InjectIPAddress()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actual, _ = r.Context().Value(storefront.IpAddrKey).(string)
	})).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "8.8.8.8", actual)
}

func TestRequestIPAddress(t *testing.T) {
	for _, tc := range []struct {
		name       string
		remoteAddr string
		forwarded  string
		expected   string
	}{
		{"Forwarded", "10.0.0.2:5000", "1.1.1.1", "1.1.1.1"},
		{"Direct", "203.0.113.9:5000", "", "203.0.113.9"},
		{"Direct-Private-Forwarded", "203.0.113.9:5000", "192.168.1.1", "203.0.113.9"},
		{"Direct-No-Port", "203.0.113.9", "", "203.0.113.9"},
		{"Unparseable", "pipe", "", middleware.UnknownIPAddress},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}

			// Act
			actual := middleware.RequestIPAddress(r)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestIPAddress(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9:5000"

	var actual string

	// Act
	middleware.InjectIPAddress()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actual = middleware.IPAddress(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), r)

	// Assert
	require.Equal(t, "203.0.113.9", actual)
	require.Empty(t, middleware.IPAddress(context.Background()))
}
