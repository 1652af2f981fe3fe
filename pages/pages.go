package pages

import (
	"errors"
	"fmt"
	"html"
	html_template "html/template"
	"io"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/http/template"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/ssr"
)

const (
	homeTmpl     = "tmpl/home.tmpl"
	productTmpl  = "tmpl/product.tmpl"
	notFoundTmpl = "tmpl/not_found.tmpl"
	cardTmpl     = "tmpl/product_card.tmpl"

	// SiteName prefixes every page title.
	SiteName = "Storefront"
)

// Pages are the storefront's page handlers.
type Pages struct {
	Home     *Home
	Product  *ProductDetail
	NotFound *NotFound
}

// New parses the page templates with p and constructs every page on svc.
// base is the path the storefront is served under; links in pages are prefixed with it.
func New(svc catalog.Service, p template.Parser, base string, l logger.Logger) (*Pages, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: no catalog", storefront.ErrBadConfig)
	}

	if l == nil {
		l = logger.NewDiscard()
	}

	p.AddFn(template.BaseURL(base))

	home, err := p.Parse(homeTmpl, cardTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse home: %s", storefront.ErrBadConfig, err)
	}

	product, err := p.Parse(productTmpl, cardTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse product: %s", storefront.ErrBadConfig, err)
	}

	notFound, err := p.Parse(notFoundTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse not found: %s", storefront.ErrBadConfig, err)
	}

	return &Pages{
		Home:     &Home{catalog: svc, tmpl: home, logger: l},
		Product:  &ProductDetail{catalog: svc, tmpl: product, logger: l},
		NotFound: &NotFound{tmpl: notFound},
	}, nil
}

// Routes declares the pages in the order they resolve.
func (ps *Pages) Routes() []ssr.Route {
	return []ssr.Route{
		{Pattern: "/", Handler: ps.Home},
		{Pattern: "/product/:id/", Handler: ps.Product},
		{Pattern: ".*", Handler: ps.NotFound},
	}
}

// title renders a document title for page.
func title(page string) string {
	if page == "" {
		return "<title>" + SiteName + "</title>"
	}

	return "<title>" + html.EscapeString(page) + " | " + SiteName + "</title>"
}

func execute(tmpl *html_template.Template, w io.Writer, data any) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("cannot execute %s: %w", tmpl.Name(), err)
	}

	return nil
}

// errNoRouter is returned by a Loader called outside of a render.
var errNoRouter = errors.New("no router in context")
