package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/http/req"
	"github.com/xy-planning-network/storefront/http/resp"
	"github.com/xy-planning-network/storefront/http/router"
)

const maxLimit = 100

// A Handler answers catalog requests.
type Handler struct {
	catalog catalog.Service
	parser  *req.Parser
	resp    *resp.Responder
}

// New constructs a *Handler reading from svc and writing through d.
func New(svc catalog.Service, d *resp.Responder) *Handler {
	return &Handler{catalog: svc, parser: req.NewParser(), resp: d}
}

// Routes lists the endpoints Handler serves, relative to where they are mounted.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: "/categories", Method: http.MethodGet, Handler: h.Categories},
		{Path: "/products", Method: http.MethodGet, Handler: h.Products},
		{Path: "/products/{id}", Method: http.MethodGet, Handler: h.Product},
	}
}

// productsParams are the query params Products accepts.
type productsParams struct {
	Search    string       `schema:"search" validate:"max=100"`
	Category1 string       `schema:"category1"`
	Category2 string       `schema:"category2"`
	Sort      catalog.Sort `schema:"sort" validate:"omitempty,enum"`
	Limit     int          `schema:"limit" validate:"omitempty,min=1,max=100"`
	Page      int          `schema:"page" validate:"omitempty,min=1"`
}

func (p productsParams) filter() catalog.Filter {
	f := catalog.Filter{
		Search:    p.Search,
		Category1: p.Category1,
		Category2: p.Category2,
		Sort:      p.Sort,
		Limit:     min(max(p.Limit, 0), maxLimit),
		Page:      max(p.Page, 1),
	}

	if f.Sort == "" {
		f.Sort = catalog.DefaultSort
	}

	if f.Limit == 0 {
		f.Limit = catalog.DefaultLimit
	}

	return f
}

// Categories responds with every category1 and the category2 values under it.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.resp.Err(w, r, err)
		return
	}

	out := make(map[string][]string, len(cats))
	for c1, c2s := range cats {
		out[c1] = make([]string, 0, len(c2s))
		for c2 := range c2s {
			out[c1] = append(out[c1], c2)
		}
	}

	h.resp.Json(w, r, resp.Data(out))
}

// Products responds with the page of products matching the query params.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	var params productsParams
	if err := h.parser.ParseQueryParams(r.URL.Query(), &params); err != nil {
		var verrs req.ValidationErrors
		if errors.As(err, &verrs) {
			h.resp.Json(w, r, resp.Code(http.StatusBadRequest), resp.Data(verrs))
			return
		}

		h.resp.Err(w, r, err, resp.Code(http.StatusBadRequest))
		return
	}

	list, err := h.catalog.Products(r.Context(), params.filter())
	if err != nil {
		h.resp.Err(w, r, err)
		return
	}

	h.resp.Json(w, r, resp.Data(list))
}

// productDetail mirrors the hydration payload for a product page.
type productDetail struct {
	Product         catalog.Product   `json:"product"`
	RelatedProducts []catalog.Product `json:"relatedProducts"`
}

// Product responds with the product identified in the path and its related products.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, err := h.catalog.Product(r.Context(), id)
	if errors.Is(err, storefront.ErrNotFound) {
		h.resp.Json(w, r, resp.Code(http.StatusNotFound), resp.Data(map[string]string{"error": "product not found"}))
		return
	}

	if err != nil {
		h.resp.Err(w, r, err)
		return
	}

	related, err := catalog.Related(r.Context(), h.catalog, p)
	if err != nil {
		h.resp.Err(w, r, err)
		return
	}

	h.resp.Json(w, r, resp.Data(productDetail{Product: p, RelatedProducts: related}))
}
