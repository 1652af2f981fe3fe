package pages

import (
	"context"
	"errors"
	"fmt"
	html_template "html/template"
	"io"
	"net/http"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/router"
)

// ProductData is what ProductDetail loads.
// Product is nil when no product matches the requested ID.
type ProductData struct {
	Product         *catalog.Product  `json:"product"`
	RelatedProducts []catalog.Product `json:"relatedProducts"`
}

// StatusCode responds 404 for a product that does not exist.
func (d ProductData) StatusCode() int {
	if d.Product == nil {
		return http.StatusNotFound
	}

	return http.StatusOK
}

// ProductDetail shows the product identified by the route's id parameter
// and the products related to it.
type ProductDetail struct {
	catalog catalog.Service
	tmpl    *html_template.Template
	logger  logger.Logger
}

// Load reads the product and its related products.
// A product that does not exist loads as an empty ProductData.
func (p *ProductDetail) Load(ctx context.Context) (any, error) {
	r, ok := router.FromContext(ctx)
	if !ok {
		return nil, errNoRouter
	}

	id := r.Params()["id"]
	product, err := p.catalog.Product(ctx, id)
	if errors.Is(err, storefront.ErrNotFound) {
		p.logger.Info("product not found", &logger.LogContext{Data: map[string]any{"id": id}})
		return ProductData{RelatedProducts: []catalog.Product{}}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("cannot find product %s: %w", id, err)
	}

	related, err := catalog.Related(ctx, p.catalog, product)
	if err != nil {
		return nil, fmt.Errorf("cannot list products related to %s: %w", id, err)
	}

	return ProductData{Product: &product, RelatedProducts: related}, nil
}

func (p *ProductDetail) Head(data any) string {
	d, ok := data.(ProductData)
	if !ok || d.Product == nil {
		return title("Product not found")
	}

	return title(d.Product.Title)
}

func (p *ProductDetail) Render(w io.Writer, data any) error { return execute(p.tmpl, w, data) }
