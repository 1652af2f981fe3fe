package hydrate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/router"
	"github.com/xy-planning-network/storefront/storage"
	"github.com/xy-planning-network/storefront/store"
)

// A Payload is the initial data a storefront page carries.
// Home pages carry products, product pages a product and its related products.
type Payload struct {
	Products        []catalog.Product  `json:"products"`
	Categories      catalog.Categories `json:"categories"`
	TotalCount      int                `json:"totalCount"`
	Product         *catalog.Product   `json:"product"`
	RelatedProducts []catalog.Product  `json:"relatedProducts"`
}

// A FetchFunc loads the data for the route r resolved into the product store.
type FetchFunc func(ctx context.Context, r *router.Router) error

// Boot starts the browser model.
type Boot struct {
	Window   *Window
	Products *store.ProductStore
	Cart     *store.CartStore
	Storage  *storage.Storage
	Router   *router.Router

	// Fetch loads data when the page carried none.
	Fetch FetchFunc

	// Events are registered, in order, after the product store is seeded.
	Events []func()

	Logger logger.Logger
}

// Run boots the browser model:
//
//  1. consumes the Window's initial data and seeds the product store with one Setup action
//  2. registers Events
//  3. restores the cart from Storage and persists it on every change
//  4. starts the Router
//  5. calls Fetch if the page carried no data
//
// Run reports whether the product store was seeded from initial data.
func (b *Boot) Run(ctx context.Context) (bool, error) {
	if b.Logger == nil {
		b.Logger = logger.NewDiscard()
	}

	seeded := b.seed()

	for _, register := range b.Events {
		register()
	}

	if b.Cart != nil && b.Storage != nil {
		var cart store.CartState
		if b.Storage.Get(ctx, &cart) {
			b.Cart.Dispatch(store.Action{Type: store.Load, Payload: cart})
		}

		b.Cart.Subscribe(func() { b.Storage.Set(ctx, b.Cart.State()) })
	}

	if b.Router != nil {
		b.Router.Start()
	}

	if seeded || b.Fetch == nil || b.Router == nil {
		return seeded, nil
	}

	if err := b.Fetch(ctx, b.Router); err != nil {
		return false, fmt.Errorf("cannot fetch initial data: %w", err)
	}

	return false, nil
}

// seed dispatches the Window's initial data into the product store.
func (b *Boot) seed() bool {
	if b.Window == nil {
		return false
	}

	raw, ok := b.Window.Consume()
	if !ok {
		return false
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		b.Logger.Warn("cannot decode initial data", &logger.LogContext{Error: err})
		return false
	}

	if p.Products == nil && p.Product == nil {
		return false
	}

	if b.Products == nil {
		return false
	}

	categories := p.Categories
	if categories == nil {
		categories = catalog.Categories{}
	}

	b.Products.Dispatch(store.Action{Type: store.Setup, Payload: store.ProductState{
		Products:        p.Products,
		Categories:      categories,
		TotalCount:      p.TotalCount,
		CurrentProduct:  p.Product,
		RelatedProducts: p.RelatedProducts,
		Loading:         false,
		Status:          store.StatusDone,
	}})

	return true
}

// CatalogFetch returns a FetchFunc loading from svc what the route r resolved displays:
// a product and its related products when the route has an id parameter,
// otherwise the products matching the query, and the categories.
func CatalogFetch(svc catalog.Service, products *store.ProductStore) FetchFunc {
	return func(ctx context.Context, r *router.Router) error {
		products.Dispatch(store.Action{Type: store.SetStatus, Payload: store.StatusPending})

		if id, ok := r.Params()["id"]; ok {
			p, err := svc.Product(ctx, id)
			if err != nil {
				products.Dispatch(store.Action{Type: store.SetError, Payload: err})
				return err
			}

			related, err := catalog.Related(ctx, svc, p)
			if err != nil {
				products.Dispatch(store.Action{Type: store.SetError, Payload: err})
				return err
			}

			products.Dispatch(store.Action{Type: store.SetCurrentProduct, Payload: store.ProductDetail{Product: p, Related: related}})
			return nil
		}

		list, err := svc.Products(ctx, catalog.NewFilter(r.Query()))
		if err != nil {
			products.Dispatch(store.Action{Type: store.SetError, Payload: err})
			return err
		}

		categories, err := svc.Categories(ctx)
		if err != nil {
			products.Dispatch(store.Action{Type: store.SetError, Payload: err})
			return err
		}

		products.Dispatch(store.Action{Type: store.SetCategories, Payload: categories})
		products.Dispatch(store.Action{Type: store.SetProducts, Payload: list})
		return nil
	}
}
