package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/catalog"
	"github.com/xy-planning-network/storefront/catalog/mock_catalog"
	"github.com/xy-planning-network/storefront/http/api"
	"github.com/xy-planning-network/storefront/http/resp"
	"github.com/xy-planning-network/storefront/http/router"
	"github.com/xy-planning-network/storefront/logger"
)

func newServer(svc catalog.Service) http.Handler {
	d := resp.NewResponder(resp.WithLogger(logger.NewDiscard()))
	r := router.New(storefront.Testing, "/shop", nil)
	r.Subrouter("/api").HandleRoutes(api.New(svc, d).Routes())
	return r
}

func serve(t *testing.T, h http.Handler, target string, dest any) int {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	if dest != nil {
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), dest))
	}

	return w.Code
}

func TestProducts(t *testing.T) {
	h := newServer(catalog.NewStub())

	tcs := []struct {
		name     string
		target   string
		code     int
		total    int
		firstID  string
		pageSize int
	}{
		{"Zero-Value", "/shop/api/products", http.StatusOK, 10, "85067212996", 10},
		{"Category", "/shop/api/products?category2=Yoga&sort=price_desc", http.StatusOK, 2, "84123654003", 2},
		{"Limit", "/shop/api/products?limit=3&page=2", http.StatusOK, 10, "84123654002", 3},
		{"Search", "/shop/api/products?search=mat", http.StatusOK, 2, "86940857379", 2},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual struct {
				Data catalog.ProductList `json:"data"`
			}

			// Act
			code := serve(t, h, tc.target, &actual)

			// Assert
			require.Equal(t, tc.code, code)
			require.Equal(t, tc.total, actual.Data.Pagination.Total)
			require.Len(t, actual.Data.Products, tc.pageSize)
			require.Equal(t, tc.firstID, actual.Data.Products[0].ProductID)
		})
	}
}

func TestProductsNotValid(t *testing.T) {
	h := newServer(catalog.NewStub())

	for _, tc := range []struct {
		name    string
		target  string
		field   string
		message string
	}{
		{"Bad-Sort", "/shop/api/products?sort=random", "sort", "sort is not one of the accepted values"},
		{"Bad-Limit", "/shop/api/products?limit=1000", "limit", "limit must be at most 100"},
		{"Not-Int", "/shop/api/products?page=x", "page", "page must be a whole number"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual struct {
				Data struct {
					Errs []struct {
						Field   string `json:"field"`
						Message string `json:"message"`
					} `json:"validationErrors"`
				} `json:"data"`
			}

			// Act
			code := serve(t, h, tc.target, &actual)

			// Assert
			require.Equal(t, http.StatusBadRequest, code)
			require.Len(t, actual.Data.Errs, 1)
			require.Equal(t, tc.field, actual.Data.Errs[0].Field)
			require.Equal(t, tc.message, actual.Data.Errs[0].Message)
		})
	}
}

func TestProduct(t *testing.T) {
	h := newServer(catalog.NewStub())

	// Arrange
	var actual struct {
		Data struct {
			Product         catalog.Product   `json:"product"`
			RelatedProducts []catalog.Product `json:"relatedProducts"`
		} `json:"data"`
	}

	// Act
	code := serve(t, h, "/shop/api/products/84123654003", &actual)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Yoga Mat", actual.Data.Product.Title)
	require.Len(t, actual.Data.RelatedProducts, 1)
	require.Equal(t, "84123654004", actual.Data.RelatedProducts[0].ProductID)

	// Act
	code = serve(t, h, "/shop/api/products/nope", nil)

	// Assert
	require.Equal(t, http.StatusNotFound, code)
}

func TestCategories(t *testing.T) {
	// Arrange
	var actual struct {
		Data map[string][]string `json:"data"`
	}

	// Act
	code := serve(t, newServer(catalog.NewStub()), "/shop/api/categories", &actual)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.ElementsMatch(t, []string{"Bath", "Kitchen"}, actual.Data["Home"])
	require.ElementsMatch(t, []string{"Running", "Yoga"}, actual.Data["Sports"])
}

func TestCatalogError(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	svc := mock_catalog.NewMockService(ctrl)
	svc.EXPECT().Products(gomock.Any(), gomock.Any()).Return(catalog.ProductList{}, errors.New("db down"))
	svc.EXPECT().Categories(gomock.Any()).Return(nil, errors.New("db down"))
	svc.EXPECT().Product(gomock.Any(), "1").Return(catalog.Product{}, errors.New("db down"))

	h := newServer(svc)

	// Act + Assert
	require.Equal(t, http.StatusInternalServerError, serve(t, h, "/shop/api/products", nil))
	require.Equal(t, http.StatusInternalServerError, serve(t, h, "/shop/api/categories", nil))
	require.Equal(t, http.StatusInternalServerError, serve(t, h, "/shop/api/products/1", nil))
}
