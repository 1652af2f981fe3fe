package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/http/middleware"
	"github.com/xy-planning-network/storefront/http/router"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func newRouter(base string) *router.Router {
	r := router.New(storefront.Testing, base, nil)
	r.OnEveryRequest(func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Every", "yes")
			h.ServeHTTP(w, r)
		})
	})

	r.Static("/assets/", fstest.MapFS{"main.js": {Data: []byte("console.log(1)")}})
	r.Subrouter("/api").Handle(router.Route{Path: "/ping", Method: http.MethodGet, Handler: named("pong")})
	r.HandleNotFound(named("outside"))
	r.HandleBase(named("base"))
	r.CatchAll(named("page"))
	return r
}

func TestRouter(t *testing.T) {
	tcs := []struct {
		name   string
		base   string
		method string
		target string
		code   int
		body   string
		every  bool
	}{
		{"Page", "/shop", http.MethodGet, "/shop/product/1/", http.StatusOK, "page", true},
		{"Base-No-Slash", "/shop", http.MethodGet, "/shop", http.StatusOK, "base", true},
		{"Base-Slash", "/shop", http.MethodGet, "/shop/", http.StatusOK, "page", true},
		{"Head", "/shop", http.MethodHead, "/shop/", http.StatusOK, "", true},
		{"Outside-Base", "/shop", http.MethodGet, "/shopping", http.StatusOK, "outside", true},
		{"Api", "/shop", http.MethodGet, "/shop/api/ping", http.StatusOK, "pong", true},
		{"Post", "/shop", http.MethodPost, "/shop/", http.StatusMethodNotAllowed, "", false},
		{"Static", "/shop", http.MethodGet, "/shop/assets/main.js", http.StatusOK, "console.log(1)", false},
		{"No-Base-Page", "", http.MethodGet, "/product/1/", http.StatusOK, "page", true},
		{"No-Base-Static", "", http.MethodGet, "/assets/main.js", http.StatusOK, "console.log(1)", false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := newRouter(tc.base)
			w := httptest.NewRecorder()

			// Act
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.target, nil))

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.body != "" {
				require.Equal(t, tc.body, w.Body.String())
			}

			if tc.every {
				require.Equal(t, "yes", w.Header().Get("X-Every"))
			} else {
				require.Empty(t, w.Header().Get("X-Every"))
			}
		})
	}
}

func TestRouterStaticCacheControl(t *testing.T) {
	// Arrange
	r := newRouter("/shop")
	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shop/assets/main.js", nil))

	// Assert
	require.Equal(t, "max-age=2592000", w.Header().Get("Cache-Control"))
}

func TestRouterRouteMiddlewares(t *testing.T) {
	// Arrange
	var order []string
	mark := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	r := router.New(storefront.Testing, "", nil)
	r.OnEveryRequest(mark("every"))
	r.HandleRoutes([]router.Route{{
		Path:        "/x",
		Method:      http.MethodGet,
		Handler:     named("x"),
		Middlewares: []middleware.Adapter{mark("route")},
	}}, mark("group"))

	// Act
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	// Assert
	require.Equal(t, []string{"every", "group", "route"}, order)
	require.Equal(t, "", r.Base())
}
