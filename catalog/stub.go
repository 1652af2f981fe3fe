package catalog

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/storefront"
)

// Stub is a Service over a fixed set of products held in memory.
//
// Stub is safe for concurrent use.
type Stub struct {
	products []Product
}

// NewStub constructs a *Stub over products.
// Without products, it serves DefaultProducts.
func NewStub(products ...Product) *Stub {
	if len(products) == 0 {
		products = DefaultProducts()
	}

	return &Stub{products: append([]Product(nil), products...)}
}

// Products lists the products matching f.
func (s *Stub) Products(ctx context.Context, f Filter) (ProductList, error) {
	if err := ctx.Err(); err != nil {
		return ProductList{}, err
	}

	f = normalize(f)
	matched := make([]Product, 0)
	for _, p := range s.products {
		if f.matches(p) {
			matched = append(matched, p)
		}
	}

	f.order(matched)
	pg := NewPagination(f.Page, f.Limit, len(matched))

	start := min((pg.Page-1)*pg.Limit, len(matched))
	end := min(start+pg.Limit, len(matched))

	return ProductList{
		Products:   append(make([]Product, 0, end-start), matched[start:end]...),
		Pagination: pg,
		Filters:    f,
	}, nil
}

// Product finds the product identified by id.
func (s *Stub) Product(ctx context.Context, id string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}

	for _, p := range s.products {
		if p.ProductID == id {
			return p, nil
		}
	}

	return Product{}, fmt.Errorf("%w: product %s", storefront.ErrNotFound, id)
}

// Categories reports the categories of every product.
func (s *Stub) Categories(ctx context.Context) (Categories, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := make(Categories)
	for _, p := range s.products {
		c.Add(p.Category1, p.Category2)
	}

	return c, nil
}

// normalize fills zero values of f with defaults.
func normalize(f Filter) Filter {
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}

	if f.Page < 1 {
		f.Page = 1
	}

	if !f.Sort.Valid() {
		f.Sort = DefaultSort
	}

	return f
}

// DefaultProducts is a small catalog for development and tests.
func DefaultProducts() []Product {
	return []Product{
		{
			ProductID: "85067212996", Title: "PVC Clear Shower Curtain", LPrice: 220, MallName: "HomeGoods",
			Brand: "Aqua", Maker: "Aqua", Category1: "Home", Category2: "Bath", Category3: "Shower",
			Image: "https://shopping-phinf.pstatic.net/main_8506721/85067212996.jpg",
		},
		{
			ProductID: "86940857379", Title: "Bamboo Bath Mat", LPrice: 1450, MallName: "HomeGoods",
			Brand: "Greenery", Maker: "Greenery", Category1: "Home", Category2: "Bath", Category3: "Mats",
			Image: "https://shopping-phinf.pstatic.net/main_8694085/86940857379.jpg",
		},
		{
			ProductID: "82094468339", Title: "Cotton Hand Towel Set", LPrice: 990, HPrice: 1290, MallName: "LinenCo",
			Brand: "Softly", Maker: "Softly", Category1: "Home", Category2: "Bath", Category3: "Towels",
		},
		{
			ProductID: "87260871184", Title: "Cast Iron Skillet", LPrice: 3490, MallName: "KitchenPro",
			Brand: "Forge", Maker: "Forge", Category1: "Home", Category2: "Kitchen", Category3: "Cookware",
		},
		{
			ProductID: "86654124788", Title: "Chef Knife 8in", LPrice: 4990, MallName: "KitchenPro",
			Brand: "Edge", Maker: "Edge", Category1: "Home", Category2: "Kitchen", Category3: "Cutlery",
		},
		{
			ProductID: "83755018627", Title: "Wooden Cutting Board", LPrice: 1890, MallName: "KitchenPro",
			Brand: "Forge", Maker: "Forge", Category1: "Home", Category2: "Kitchen", Category3: "Prep",
		},
		{
			ProductID: "84123654001", Title: "Trail Running Shoes", LPrice: 8900, HPrice: 12900, MallName: "Outdoors",
			Brand: "Stride", Maker: "Stride", Category1: "Sports", Category2: "Running", Category3: "Shoes",
		},
		{
			ProductID: "84123654002", Title: "Running Socks 3-Pack", LPrice: 1200, MallName: "Outdoors",
			Brand: "Stride", Maker: "Stride", Category1: "Sports", Category2: "Running", Category3: "Apparel",
		},
		{
			ProductID: "84123654003", Title: "Yoga Mat", LPrice: 2500, MallName: "Outdoors",
			Brand: "Calm", Maker: "Calm", Category1: "Sports", Category2: "Yoga", Category3: "Mats",
		},
		{
			ProductID: "84123654004", Title: "Foam Yoga Block", LPrice: 800, MallName: "Outdoors",
			Brand: "Calm", Maker: "Calm", Category1: "Sports", Category2: "Yoga", Category3: "Props",
		},
	}
}
