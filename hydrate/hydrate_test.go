package hydrate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/catalog/mock_catalog"
	"github.com/xy-planning-network/storefront/hydrate"
	"github.com/xy-planning-network/storefront/router"
	"github.com/xy-planning-network/storefront/ssr"
	"github.com/xy-planning-network/storefront/storage"
	"github.com/xy-planning-network/storefront/store"
)

func renderedPage(t *testing.T, data any) []byte {
	t.Helper()
	sh, err := ssr.ParseShell(`<html><head><!--app-head--></head><body><!--app-html--></body></html>`)
	require.Nil(t, err)

	b := new(bytes.Buffer)
	require.Nil(t, sh.Execute(b, ssr.Result{Data: data}))
	return b.Bytes()
}

func TestExtractPayload(t *testing.T) {
	for _, tc := range []struct {
		name     string
		page     []byte
		expected string
		ok       bool
	}{
		{"No-Script", []byte("<html></html>"), "", false},
		{"Unclosed", []byte("<script>window.__INITIAL_DATA__ = {}"), "", false},
		{"Invalid-JSON", []byte("<script>window.__INITIAL_DATA__ = {nope}</script>"), "", false},
		{"Escaped", renderedPage(t, map[string]string{"t": "</script>"}), `{"t":"</script>"}`, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, ok := hydrate.ExtractPayload(tc.page)

			// Assert
			require.Equal(t, tc.ok, ok)
			if ok {
				require.JSONEq(t, tc.expected, string(actual))
			}
		})
	}
}

func TestWindowConsume(t *testing.T) {
	// Arrange
	w := hydrate.NewWindow(json.RawMessage(`{"products":[]}`))

	// Act
	first, ok1 := w.Consume()
	_, ok2 := w.Consume()

	// Assert
	require.True(t, ok1)
	require.JSONEq(t, `{"products":[]}`, string(first))
	require.False(t, ok2)
	require.Nil(t, w.InitialData())
}

func TestBootSeedsOnce(t *testing.T) {
	// Arrange
	products := catalog.DefaultProducts()[:3]
	page := renderedPage(t, map[string]any{
		"products":   products,
		"categories": catalog.Categories{"Home": {"Bath": {}}},
		"totalCount": 3,
	})

	var order []string
	ps := store.NewProductStore()
	ps.Subscribe(func() { order = append(order, "seed") })

	r := router.New("")
	r.AddRoute("/", "home")
	r.Subscribe(func() { order = append(order, "route") })

	w := hydrate.NewWindowFromHTML(page)
	boot := &hydrate.Boot{
		Window:   w,
		Products: ps,
		Cart:     store.NewCartStore(),
		Storage:  storage.New("cart", storage.NewMemory(), nil),
		Router:   r,
		Events:   []func(){func() { order = append(order, "events") }},
		Fetch: func(context.Context, *router.Router) error {
			order = append(order, "fetch")
			return nil
		},
	}

	// Act
	seeded, err := boot.Run(context.Background())

	// Assert
	require.Nil(t, err)
	require.True(t, seeded)
	require.Equal(t, []string{"seed", "events", "route"}, order)
	require.Nil(t, w.InitialData())

	state := ps.State()
	require.Equal(t, products, state.Products)
	require.Equal(t, 3, state.TotalCount)
	require.False(t, state.Loading)
	require.Equal(t, store.StatusDone, state.Status)
	require.Equal(t, catalog.Categories{"Home": {"Bath": {}}}, state.Categories)

	// Act
	seeded, err = boot.Run(context.Background())

	// Assert
	require.Nil(t, err)
	require.False(t, seeded)
	require.Equal(t, []string{"seed", "events", "route", "events", "route", "fetch"}, order)
}

func TestBootProductPage(t *testing.T) {
	// Arrange
	p := catalog.DefaultProducts()[0]
	w := hydrate.NewWindowFromHTML(renderedPage(t, map[string]any{"product": p, "relatedProducts": []catalog.Product{}}))
	ps := store.NewProductStore()
	boot := &hydrate.Boot{Window: w, Products: ps}

	// Act
	seeded, err := boot.Run(context.Background())

	// Assert
	require.Nil(t, err)
	require.True(t, seeded)
	require.Equal(t, &p, ps.State().CurrentProduct)
	require.Equal(t, []catalog.Product{}, ps.State().RelatedProducts)
}

func TestBootWithoutData(t *testing.T) {
	for _, tc := range []struct {
		name string
		page []byte
	}{
		{"No-Script", []byte("<html></html>")},
		{"Not-An-Object", renderedPage(t, []int{})},
		{"No-Products", renderedPage(t, map[string]any{"totalCount": 3})},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ps := store.NewProductStore()
			fetched := false
			r := router.New("")
			r.AddRoute("/", "home")
			boot := &hydrate.Boot{
				Window:   hydrate.NewWindowFromHTML(tc.page),
				Products: ps,
				Router:   r,
				Fetch: func(context.Context, *router.Router) error {
					fetched = true
					return nil
				},
			}

			// Act
			seeded, err := boot.Run(context.Background())

			// Assert
			require.Nil(t, err)
			require.False(t, seeded)
			require.True(t, fetched)
			require.Equal(t, store.StatusIdle, ps.State().Status)
		})
	}
}

func TestBootFetchError(t *testing.T) {
	// Arrange
	fetchErr := errors.New("offline")
	boot := &hydrate.Boot{
		Window: hydrate.NewWindow(nil),
		Router: router.New(""),
		Fetch:  func(context.Context, *router.Router) error { return fetchErr },
	}

	// Act
	_, err := boot.Run(context.Background())

	// Assert
	require.ErrorIs(t, err, fetchErr)
}

func TestBootRestoresCart(t *testing.T) {
	// Arrange
	ctx := context.Background()
	s := storage.New("cart", storage.NewMemory(), nil)
	s.Set(ctx, store.CartState{Items: []store.CartItem{{ID: "1", Quantity: 2}}})
	cart := store.NewCartStore()
	boot := &hydrate.Boot{Cart: cart, Storage: s}

	// Act
	_, err := boot.Run(ctx)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []store.CartItem{{ID: "1", Quantity: 2}}, cart.State().Items)

	// Act
	cart.Dispatch(store.Action{Type: store.Clear})

	// Assert
	var persisted store.CartState
	require.True(t, s.Get(ctx, &persisted))
	require.Empty(t, persisted.Items)
}

func TestHistory(t *testing.T) {
	// Arrange
	h := hydrate.NewHistory("/")
	r := router.New("", router.WithLocation(h))
	r.AddRoute("/", "home")
	r.AddRoute("/product/:id/", "product")
	r.AddRoute(".*", "not found")
	h.Attach(r)

	var targets []any
	r.Subscribe(func() { targets = append(targets, r.Target()) })
	r.Start()

	// Act
	h.Push("/product/42/?ref=home")

	// Assert
	require.Equal(t, "42", r.Params()["id"])
	require.Equal(t, "home", r.Query().Get("ref"))

	// Act
	h.Replace("/nowhere")
	ok := h.Back()

	// Assert
	require.True(t, ok)
	require.Equal(t, 1, h.Len())
	require.Equal(t, []any{"home", "product", "not found", "home"}, targets)
	require.False(t, h.Back())
}

func TestCatalogFetch(t *testing.T) {
	p := catalog.Product{ProductID: "7", Category2: "Bath"}
	for _, tc := range []struct {
		name   string
		url    string
		setup  func(m *mock_catalog.MockService)
		assert func(t *testing.T, s store.ProductState, err error)
	}{
		{
			"Home",
			"/?search=mat",
			func(m *mock_catalog.MockService) {
				m.EXPECT().
					Products(gomock.Any(), catalog.Filter{Search: "mat", Sort: catalog.SortPriceAsc, Limit: 20, Page: 1}).
					Return(catalog.ProductList{Products: []catalog.Product{p}, Pagination: catalog.Pagination{Total: 1}}, nil)
				m.EXPECT().Categories(gomock.Any()).Return(catalog.Categories{"Home": {}}, nil)
			},
			func(t *testing.T, s store.ProductState, err error) {
				require.Nil(t, err)
				require.Equal(t, []catalog.Product{p}, s.Products)
				require.Equal(t, 1, s.TotalCount)
				require.Equal(t, catalog.Categories{"Home": {}}, s.Categories)
				require.Equal(t, store.StatusDone, s.Status)
			},
		},
		{
			"Product",
			"/product/7/",
			func(m *mock_catalog.MockService) {
				m.EXPECT().Product(gomock.Any(), "7").Return(p, nil)
				m.EXPECT().Products(gomock.Any(), gomock.Any()).Return(catalog.ProductList{Products: []catalog.Product{p}}, nil)
			},
			func(t *testing.T, s store.ProductState, err error) {
				require.Nil(t, err)
				require.Equal(t, &p, s.CurrentProduct)
				require.Equal(t, []catalog.Product{}, s.RelatedProducts)
			},
		},
		{
			"Error",
			"/product/8/",
			func(m *mock_catalog.MockService) {
				m.EXPECT().Product(gomock.Any(), "8").Return(catalog.Product{}, errors.New("gone"))
			},
			func(t *testing.T, s store.ProductState, err error) {
				require.EqualError(t, err, "gone")
				require.Equal(t, store.StatusError, s.Status)
				require.Equal(t, "gone", s.Error)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mock_catalog.NewMockService(ctrl)
			tc.setup(m)

			ps := store.NewProductStore()
			r := router.New("")
			r.AddRoute("/", "home")
			r.AddRoute("/product/:id/", "product")
			r.SetURL(tc.url)
			r.Start()

			// Act
			err := hydrate.CatalogFetch(m, ps)(context.Background(), r)

			// Assert
			tc.assert(t, ps.State(), err)
		})
	}
}
