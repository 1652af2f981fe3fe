package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/postgres"
	"gorm.io/gorm"
)

// Migrations create the tables Postgres reads from.
var Migrations = []postgres.Migration{
	{
		Key: "20240301-create-products",
		Executor: func(db *gorm.DB) error {
			return db.AutoMigrate(new(Product))
		},
	},
}

// Postgres is a Service reading the products table.
type Postgres struct {
	db *postgres.DB
}

// NewPostgres constructs a *Postgres on db.
func NewPostgres(db *postgres.DB) *Postgres { return &Postgres{db: db} }

// Products lists the products matching f.
func (p *Postgres) Products(ctx context.Context, f Filter) (ProductList, error) {
	f = normalize(f)
	pd, err := p.db.
		WithContext(ctx).
		Model(new(Product)).
		Scope(filterScope(f)).
		Order(f.orderClause()).
		Paged(int64(f.Page), int64(f.Limit))
	if err != nil {
		return ProductList{}, err
	}

	products := make([]Product, 0)
	if items, ok := pd.Items.(*[]Product); ok && items != nil {
		products = append(products, *items...)
	}

	return ProductList{
		Products:   products,
		Pagination: NewPagination(int(pd.Page), int(pd.PerPage), int(pd.TotalItems)),
		Filters:    f,
	}, nil
}

// Product finds the product identified by id.
func (p *Postgres) Product(ctx context.Context, id string) (Product, error) {
	var product Product
	err := p.db.WithContext(ctx).Where("product_id = ?", id).First(&product)
	if err != nil {
		return Product{}, fmt.Errorf("product %s: %w", id, err)
	}

	return product, nil
}

// Categories reports the categories of every product.
func (p *Postgres) Categories(ctx context.Context) (Categories, error) {
	var rows []struct {
		Category1 string
		Category2 string
	}

	err := p.db.
		WithContext(ctx).
		Model(new(Product)).
		Distinct("category1", "category2").
		Where("category1 <> ?", "").
		Find(&rows)
	if err != nil && !errors.Is(err, storefront.ErrNotFound) {
		return nil, err
	}

	c := make(Categories)
	for _, r := range rows {
		c.Add(r.Category1, r.Category2)
	}

	return c, nil
}

// Seed inserts products when the products table is empty.
func Seed(ctx context.Context, db *postgres.DB, products []Product) error {
	exists, err := db.WithContext(ctx).Model(new(Product)).Exists()
	if err != nil {
		return err
	}

	if exists || len(products) == 0 {
		return nil
	}

	return db.WithContext(ctx).Create(&products)
}

// filterScope narrows a products query to f's search and categories.
func filterScope(f Filter) postgres.Scope {
	return func(db *postgres.DB) *postgres.DB {
		if f.Search != "" {
			db = db.Where("(title ILIKE @q OR brand ILIKE @q)", sql.Named("q", "%"+f.Search+"%"))
		}

		if f.Category1 != "" {
			db = db.Where("category1 = ?", f.Category1)
		}

		if f.Category2 != "" {
			db = db.Where("category2 = ?", f.Category2)
		}

		return db
	}
}
