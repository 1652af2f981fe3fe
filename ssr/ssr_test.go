package ssr_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront/query"
	"github.com/xy-planning-network/storefront/router"
	"github.com/xy-planning-network/storefront/ssr"
)

type homePage struct{}

func (homePage) Render(w io.Writer, _ any) error {
	_, err := io.WriteString(w, "<main>home</main>")
	return err
}

type productPage struct {
	err error
}

func (p productPage) Load(ctx context.Context) (any, error) {
	if p.err != nil {
		return nil, p.err
	}

	r, ok := router.FromContext(ctx)
	if !ok {
		return nil, errors.New("no router")
	}

	return map[string]any{"id": r.Params()["id"], "ref": r.Query().Get("ref")}, nil
}

func (productPage) Head(data any) string {
	return fmt.Sprintf("<title>product %s</title>", data.(map[string]any)["id"])
}

func (productPage) Render(w io.Writer, data any) error {
	_, err := fmt.Fprintf(w, "<main>product %s</main>", data.(map[string]any)["id"])
	return err
}

type notFoundPage struct{}

func (notFoundPage) StatusCode() int { return http.StatusNotFound }

func (notFoundPage) Render(w io.Writer, _ any) error {
	_, err := io.WriteString(w, "<main>not found</main>")
	return err
}

func routes(p productPage) []ssr.Route {
	return []ssr.Route{
		{Pattern: "/", Handler: homePage{}},
		{Pattern: "/product/:id/", Handler: p},
		{Pattern: ".*", Handler: notFoundPage{}},
	}
}

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		name   string
		url    string
		status int
		head   string
		html   string
		data   any
	}{
		{"Home", "/", http.StatusOK, "", "<main>home</main>", nil},
		{
			"Product",
			"/product/7/?ref=home",
			http.StatusOK,
			"<title>product 7</title>",
			"<main>product 7</main>",
			map[string]any{"id": "7", "ref": "home"},
		},
		{"Not-Found", "/cart", http.StatusNotFound, "", "<main>not found</main>", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rd := ssr.New(routes(productPage{}))

			// Act
			res, err := rd.Render(context.Background(), tc.url)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.status, res.Status)
			require.Equal(t, tc.head, res.Head)
			require.Equal(t, tc.data, res.Data)
			require.NotNil(t, res.HTML)

			b := new(bytes.Buffer)
			require.Nil(t, res.HTML(b, res.Data))
			require.Equal(t, tc.html, b.String())
		})
	}
}

func TestRenderQuery(t *testing.T) {
	// Arrange
	rd := ssr.New(routes(productPage{}))

	// Act
	res, err := rd.Render(context.Background(), "/?search=shoes&limit=20")

	// Assert
	require.Nil(t, err)
	require.Equal(t, query.Values{"search": "shoes", "limit": "20"}, res.Query)
	require.Equal(t, "/", res.Route.Path)
}

func TestRenderUnmatchedNoCatchAll(t *testing.T) {
	// Arrange
	rd := ssr.New([]ssr.Route{{Pattern: "/", Handler: homePage{}}})

	// Act
	var res ssr.Result
	var err error
	require.NotPanics(t, func() { res, err = rd.Render(context.Background(), "/missing") })

	// Assert
	require.Nil(t, err)
	require.Nil(t, res.Target)
	require.Nil(t, res.Route)
	require.Nil(t, res.HTML)
	require.Equal(t, http.StatusNotFound, res.Status)
}

func TestRenderWithNotFound(t *testing.T) {
	// Arrange
	rd := ssr.New([]ssr.Route{{Pattern: "/", Handler: homePage{}}}, ssr.WithNotFound(notFoundPage{}))

	// Act
	res, err := rd.Render(context.Background(), "/missing")

	// Assert
	require.Nil(t, err)
	require.Equal(t, notFoundPage{}, res.Target)
	require.Nil(t, res.Route)
	require.Equal(t, http.StatusNotFound, res.Status)
}

func TestRenderLoaderError(t *testing.T) {
	// Arrange
	loaderErr := errors.New("catalog unavailable")
	rd := ssr.New(routes(productPage{err: loaderErr}))

	// Act
	res, err := rd.Render(context.Background(), "/product/1/")

	// Assert
	require.Equal(t, loaderErr, err)
	require.Zero(t, res)
}

func TestRenderStates(t *testing.T) {
	for _, tc := range []struct {
		name     string
		url      string
		expected []ssr.State
	}{
		{
			"No-Loader",
			"/",
			[]ssr.State{ssr.Idle, ssr.RoutesRegistered, ssr.URLSet, ssr.Resolved, ssr.Rendered},
		},
		{
			"Loader",
			"/product/2/",
			[]ssr.State{ssr.Idle, ssr.RoutesRegistered, ssr.URLSet, ssr.Resolved, ssr.DataLoading, ssr.Rendered},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual []ssr.State
			rd := ssr.New(routes(productPage{}), ssr.WithObserver(func(s ssr.State) { actual = append(actual, s) }))

			// Act
			_, err := rd.Render(context.Background(), tc.url)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestRenderBaseURL(t *testing.T) {
	// Arrange
	rd := ssr.New(routes(productPage{}), ssr.WithBaseURL("/shop"))

	// Act
	res, err := rd.Render(context.Background(), "/shop/product/5/")

	// Assert
	require.Nil(t, err)
	require.Equal(t, map[string]any{"id": "5", "ref": ""}, res.Data)
}

func TestRenderConcurrent(t *testing.T) {
	// Arrange
	rd := ssr.New(routes(productPage{}))
	var wg sync.WaitGroup
	errs := make(chan error, 50)

	// Act
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprint(i)
			res, err := rd.Render(context.Background(), "/product/"+id+"/")
			if err != nil {
				errs <- err
				return
			}

			if got := res.Data.(map[string]any)["id"]; got != id {
				errs <- fmt.Errorf("rendered %v for %s", got, id)
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	// Assert
	for err := range errs {
		require.Nil(t, err)
	}
}

func TestRendererRoutes(t *testing.T) {
	// Arrange
	rd := ssr.New(routes(productPage{}))

	// Act
	r := rd.Router()
	r.SetURL("/product/3/")
	r.Start()

	// Assert
	require.Len(t, rd.Routes(), 3)
	require.Equal(t, "3", r.Params()["id"])
}

func TestStateString(t *testing.T) {
	require.Equal(t, "data-loading", ssr.DataLoading.String())
	require.Equal(t, "unknown", ssr.State(99).String())
}

type gone struct{}

func (gone) StatusCode() int { return http.StatusGone }

type goneLoader struct{}

func (goneLoader) Load(context.Context) (any, error) { return gone{}, nil }

func TestRenderDataStatus(t *testing.T) {
	// Arrange
	rd := ssr.New([]ssr.Route{{Pattern: "/", Handler: goneLoader{}}})

	// Act
	res, err := rd.Render(context.Background(), "/")

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusGone, res.Status)
	require.Nil(t, res.HTML)
}
