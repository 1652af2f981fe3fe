package pages

import (
	"context"
	"fmt"
	html_template "html/template"
	"io"
	"time"

	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/query"
	"github.com/xy-planning-network/storefront/router"
)

// HomeData is what Home loads.
type HomeData struct {
	Products   []catalog.Product  `json:"products"`
	Categories catalog.Categories `json:"categories"`
	TotalCount int                `json:"totalCount"`
	Filters    catalog.Filter     `json:"filters"`
	Pagination catalog.Pagination `json:"pagination"`
}

// NextPage is the query of the page after this one.
func (d HomeData) NextPage() string {
	f := d.Filters
	f.Page = d.Pagination.Page + 1
	return query.Stringify(f.Query())
}

// Home lists products filtered by the query.
type Home struct {
	catalog catalog.Service
	tmpl    *html_template.Template
	logger  logger.Logger
}

// Load reads the products matching the query and every category.
func (h *Home) Load(ctx context.Context) (any, error) {
	r, ok := router.FromContext(ctx)
	if !ok {
		return nil, errNoRouter
	}

	start := time.Now()
	f := catalog.NewFilter(r.Query())
	list, err := h.catalog.Products(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("cannot list products: %w", err)
	}

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list categories: %w", err)
	}

	h.logger.Debug("loaded home", &logger.LogContext{Data: map[string]any{
		"filters": f,
		"count":   len(list.Products),
		"took":    time.Since(start).String(),
	}})

	return HomeData{
		Products:   list.Products,
		Categories: categories,
		TotalCount: list.Pagination.Total,
		Filters:    list.Filters,
		Pagination: list.Pagination,
	}, nil
}

func (h *Home) Head(data any) string {
	d, ok := data.(HomeData)
	if ok && d.Filters.Search != "" {
		return title("Search: " + d.Filters.Search)
	}

	return title("")
}

func (h *Home) Render(w io.Writer, data any) error { return execute(h.tmpl, w, data) }
