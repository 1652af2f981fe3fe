package store

import "github.com/xy-planning-network/storefront/catalog"

const (
	Setup             ActionType = "SETUP"
	SetProducts       ActionType = "SET_PRODUCTS"
	SetCategories     ActionType = "SET_CATEGORIES"
	SetCurrentProduct ActionType = "SET_CURRENT_PRODUCT"
	SetStatus         ActionType = "SET_STATUS"
	SetError          ActionType = "SET_ERROR"
)

// Statuses of loading products.
const (
	StatusIdle    = "idle"
	StatusPending = "pending"
	StatusDone    = "done"
	StatusError   = "error"
)

// ProductState is what the browser model knows about the catalog.
type ProductState struct {
	Products        []catalog.Product  `json:"products"`
	Categories      catalog.Categories `json:"categories"`
	TotalCount      int                `json:"totalCount"`
	CurrentProduct  *catalog.Product   `json:"currentProduct,omitempty"`
	RelatedProducts []catalog.Product  `json:"relatedProducts,omitempty"`
	Loading         bool               `json:"loading"`
	Status          string             `json:"status"`
	Error           string             `json:"error,omitempty"`
}

// A ProductDetail is the payload of a SetCurrentProduct Action.
type ProductDetail struct {
	Product catalog.Product
	Related []catalog.Product
}

// ProductStore holds ProductState.
type ProductStore = Store[ProductState]

// NewProductStore constructs a *ProductStore that has loaded nothing yet.
func NewProductStore() *ProductStore {
	return New(ProductState{Loading: true, Status: StatusIdle, Categories: catalog.Categories{}}, reduceProducts)
}

func reduceProducts(s ProductState, a Action) ProductState {
	switch a.Type {
	case Setup:
		if next, ok := a.Payload.(ProductState); ok {
			return next
		}

	case SetProducts:
		list, ok := a.Payload.(catalog.ProductList)
		if !ok {
			return s
		}

		s.Products = list.Products
		s.TotalCount = list.Pagination.Total
		s.Loading = false
		s.Status = StatusDone
		s.Error = ""

	case SetCategories:
		if c, ok := a.Payload.(catalog.Categories); ok {
			s.Categories = c
		}

	case SetCurrentProduct:
		d, ok := a.Payload.(ProductDetail)
		if !ok {
			return s
		}

		p := d.Product
		s.CurrentProduct = &p
		s.RelatedProducts = d.Related
		s.Loading = false
		s.Status = StatusDone
		s.Error = ""

	case SetStatus:
		status, ok := a.Payload.(string)
		if !ok {
			return s
		}

		s.Status = status
		s.Loading = status == StatusPending

	case SetError:
		s.Loading = false
		s.Status = StatusError
		switch v := a.Payload.(type) {
		case error:
			s.Error = v.Error()
		case string:
			s.Error = v
		}
	}

	return s
}
