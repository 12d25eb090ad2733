package httpapi

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sohaibalidev/Zeevno/internal/catalog"
)

type fakeCatalogService struct {
	listFn     func(ctx context.Context, page, limit int) ([]catalog.Listing, catalog.Pagination, error)
	productFn  func(ctx context.Context, id string) (catalog.Detail, error)
	featuredFn func(ctx context.Context) ([]catalog.FeaturedCard, error)
}

func (f *fakeCatalogService) ListProducts(ctx context.Context, page, limit int) ([]catalog.Listing, catalog.Pagination, error) {
	return f.listFn(ctx, page, limit)
}

func (f *fakeCatalogService) Product(ctx context.Context, id string) (catalog.Detail, error) {
	return f.productFn(ctx, id)
}

func (f *fakeCatalogService) Featured(ctx context.Context) ([]catalog.FeaturedCard, error) {
	return f.featuredFn(ctx)
}

func (f *fakeCatalogService) Categories(ctx context.Context) ([]catalog.CategorySummary, error) {
	return nil, nil
}

func (f *fakeCatalogService) ProductsByCategory(ctx context.Context, category string, page, limit int) ([]catalog.Listing, catalog.Pagination, error) {
	return f.listFn(ctx, page, limit)
}

func (f *fakeCatalogService) RelatedProducts(ctx context.Context, productID string) ([]catalog.Product, error) {
	return nil, nil
}

func catalogRouter(svc CatalogService) http.Handler {
	h := NewCatalogHandler(svc, log.New(io.Discard, "", 0))
	r := chi.NewRouter()
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/featured", h.Featured)
		r.Get("/{id}", h.Get)
	})
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.Categories)
		r.Get("/related/{id}", h.Related)
		r.Get("/{category}", h.ByCategory)
	})
	return r
}

func TestProductList(t *testing.T) {
	t.Run("passes pagination through", func(t *testing.T) {
		svc := &fakeCatalogService{
			listFn: func(ctx context.Context, page, limit int) ([]catalog.Listing, catalog.Pagination, error) {
				assert.Equal(t, 2, page)
				assert.Equal(t, 20, limit)
				return []catalog.Listing{}, catalog.Pagination{Page: page, Limit: limit}, nil
			},
		}

		rec := httptest.NewRecorder()
		catalogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=20", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("defaults when params are absent", func(t *testing.T) {
		svc := &fakeCatalogService{
			listFn: func(ctx context.Context, page, limit int) ([]catalog.Listing, catalog.Pagination, error) {
				assert.Equal(t, 1, page)
				assert.Equal(t, 1000, limit)
				return []catalog.Listing{}, catalog.Pagination{}, nil
			},
		}

		rec := httptest.NewRecorder()
		catalogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := map[string]struct {
		url        string
		svcErr     error
		wantStatus int
	}{
		"non-numeric page":   {url: "/api/products?page=abc", wantStatus: http.StatusBadRequest},
		"zero limit":         {url: "/api/products?limit=0", wantStatus: http.StatusBadRequest},
		"page out of range":  {url: "/api/products?page=99", svcErr: catalog.ErrPageOutOfRange, wantStatus: http.StatusNotFound},
		"repository failure": {url: "/api/products", svcErr: errors.New("mongo down"), wantStatus: http.StatusInternalServerError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &fakeCatalogService{
				listFn: func(ctx context.Context, page, limit int) ([]catalog.Listing, catalog.Pagination, error) {
					return nil, catalog.Pagination{}, tc.svcErr
				},
			}

			rec := httptest.NewRecorder()
			catalogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestProductGet(t *testing.T) {
	t.Run("malformed id is rejected before the lookup", func(t *testing.T) {
		svc := &fakeCatalogService{
			productFn: func(ctx context.Context, id string) (catalog.Detail, error) {
				t.Fatal("lookup should not run for a malformed id")
				return catalog.Detail{}, nil
			},
		}

		rec := httptest.NewRecorder()
		catalogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/abc123", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := &fakeCatalogService{
			productFn: func(ctx context.Context, id string) (catalog.Detail, error) {
				return catalog.Detail{}, catalog.ErrNotFound
			},
		}

		rec := httptest.NewRecorder()
		catalogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/999999", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		svc := &fakeCatalogService{
			productFn: func(ctx context.Context, id string) (catalog.Detail, error) {
				assert.Equal(t, "100001", id)
				return catalog.Detail{Product: catalog.Product{ID: id, Name: "Desk Lamp"}}, nil
			},
		}

		rec := httptest.NewRecorder()
		catalogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/100001", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestFeatured(t *testing.T) {
	svc := &fakeCatalogService{
		featuredFn: func(ctx context.Context) ([]catalog.FeaturedCard, error) {
			return []catalog.FeaturedCard{{ID: "100001"}}, nil
		},
	}

	rec := httptest.NewRecorder()
	catalogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/featured", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
