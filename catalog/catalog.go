package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/xy-planning-network/storefront/query"
)

//go:generate mockgen -destination=mock_catalog/service.go -package=mock_catalog . Service

// A Service reads the product catalog.
type Service interface {
	// Products lists the products matching f.
	Products(ctx context.Context, f Filter) (ProductList, error)

	// Product finds the product identified by id.
	// If none exists, the error wraps storefront.ErrNotFound.
	Product(ctx context.Context, id string) (Product, error)

	// Categories reports every category1 and the category2 values filed under it.
	Categories(ctx context.Context) (Categories, error)
}

// A Product is a single item for sale.
type Product struct {
	ProductID string `json:"productId" gorm:"primaryKey"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	LPrice    int    `json:"lprice"`
	HPrice    int    `json:"hprice"`
	MallName  string `json:"mallName"`
	Brand     string `json:"brand"`
	Maker     string `json:"maker"`
	Category1 string `json:"category1" gorm:"index"`
	Category2 string `json:"category2" gorm:"index"`
	Category3 string `json:"category3"`
	Category4 string `json:"category4"`
}

// Categories maps each category1 to the set of category2 values under it.
type Categories map[string]map[string]struct{}

// Add files category2 under category1.
// An empty category2 only records category1.
func (c Categories) Add(category1, category2 string) {
	if category1 == "" {
		return
	}

	if _, ok := c[category1]; !ok {
		c[category1] = make(map[string]struct{})
	}

	if category2 != "" {
		c[category1][category2] = struct{}{}
	}
}

// A Pagination describes where a ProductList sits among all matching products.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes a Pagination for total matching products.
func NewPagination(page, limit, total int) Pagination {
	p := Pagination{Page: max(1, page), Limit: max(1, limit), Total: total}
	p.TotalPages = (total + p.Limit - 1) / p.Limit
	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1
	return p
}

// A ProductList is one page of products matching Filters.
type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
	Filters    Filter     `json:"filters"`
}

// A Sort orders a ProductList.
type Sort string

const (
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNameAsc   Sort = "name_asc"
	SortNameDesc  Sort = "name_desc"
)

func (s Sort) String() string { return string(s) }

// Valid asserts whether s is a known Sort.
func (s Sort) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	default:
		return false
	}
}

const (
	DefaultLimit = 20
	DefaultSort  = SortPriceAsc
)

// A Filter narrows and orders the products listed.
type Filter struct {
	Search    string `json:"search"`
	Category1 string `json:"category1"`
	Category2 string `json:"category2"`
	Sort      Sort   `json:"sort"`
	Limit     int    `json:"limit"`
	Page      int    `json:"page"`
}

// NewFilter reads a Filter from query values.
// Missing or malformed values fall back to page 1, DefaultLimit and DefaultSort.
// "current" is accepted in place of "page".
func NewFilter(q query.Values) Filter {
	f := Filter{
		Search:    strings.TrimSpace(q.Get("search")),
		Category1: q.Get("category1"),
		Category2: q.Get("category2"),
		Sort:      Sort(q.Get("sort")),
		Limit:     atoiOr(q.Get("limit"), DefaultLimit),
		Page:      atoiOr(q.Get("page"), atoiOr(q.Get("current"), 1)),
	}

	if !f.Sort.Valid() {
		f.Sort = DefaultSort
	}

	return f
}

// Query renders f as query values, leaving out defaults.
func (f Filter) Query() query.Values {
	q := query.Values{
		"search":    f.Search,
		"category1": f.Category1,
		"category2": f.Category2,
	}

	if f.Sort != DefaultSort {
		q["sort"] = string(f.Sort)
	}

	if f.Limit != DefaultLimit {
		q["limit"] = strconv.Itoa(f.Limit)
	}

	if f.Page > 1 {
		q["page"] = strconv.Itoa(f.Page)
	}

	return q
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}

	return n
}

// matches asserts whether p passes f's search and category narrowing.
func (f Filter) matches(p Product) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), s) && !strings.Contains(strings.ToLower(p.Brand), s) {
			return false
		}
	}

	if f.Category1 != "" && p.Category1 != f.Category1 {
		return false
	}

	if f.Category2 != "" && p.Category2 != f.Category2 {
		return false
	}

	return true
}

// order sorts ps in place by f.Sort.
func (f Filter) order(ps []Product) {
	var less func(a, b Product) bool
	switch f.Sort {
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.LPrice > b.LPrice }
	case SortNameAsc:
		less = func(a, b Product) bool { return a.Title < b.Title }
	case SortNameDesc:
		less = func(a, b Product) bool { return a.Title > b.Title }
	default:
		less = func(a, b Product) bool { return a.LPrice < b.LPrice }
	}

	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

// orderClause is f.Sort as a SQL ORDER BY clause.
func (f Filter) orderClause() string {
	switch f.Sort {
	case SortPriceDesc:
		return "l_price DESC, product_id"
	case SortNameAsc:
		return "title ASC, product_id"
	case SortNameDesc:
		return "title DESC, product_id"
	default:
		return "l_price ASC, product_id"
	}
}

// Related lists the products sharing p's category2, leaving out p.
func Related(ctx context.Context, svc Service, p Product) ([]Product, error) {
	related := make([]Product, 0)
	if p.Category2 == "" {
		return related, nil
	}

	list, err := svc.Products(ctx, Filter{
		Category2: p.Category2,
		Limit:     DefaultLimit,
		Page:      1,
		Sort:      DefaultSort,
	})
	if err != nil {
		return nil, err
	}

	for _, rp := range list.Products {
		if rp.ProductID != p.ProductID {
			related = append(related, rp)
		}
	}

	return related, nil
}
