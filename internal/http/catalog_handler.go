package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sohaibalidev/Zeevno/internal/catalog"
	"github.com/sohaibalidev/Zeevno/internal/validate"
)

// CatalogService is the browsing surface the storefront renders.
type CatalogService interface {
	ListProducts(ctx context.Context, page, limit int) ([]catalog.Listing, catalog.Pagination, error)
	Product(ctx context.Context, id string) (catalog.Detail, error)
	Featured(ctx context.Context) ([]catalog.FeaturedCard, error)
	Categories(ctx context.Context) ([]catalog.CategorySummary, error)
	ProductsByCategory(ctx context.Context, category string, page, limit int) ([]catalog.Listing, catalog.Pagination, error)
	RelatedProducts(ctx context.Context, productID string) ([]catalog.Product, error)
}

type CatalogHandler struct {
	svc    CatalogService
	logger *log.Logger
}

func NewCatalogHandler(svc CatalogService, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

const (
	defaultPage  = 1
	defaultLimit = 1000
)

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	listings, pagination, err := h.svc.ListProducts(r.Context(), page, limit)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"products":   listings,
		"pagination": pagination,
	})
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validate.ProductID(id) {
		writeError(w, http.StatusBadRequest, "validation_error", "product id must be a 6-digit number")
		return
	}

	detail, err := h.svc.Product(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeData(w, http.StatusOK, detail)
}

func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.Featured(r.Context())
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeData(w, http.StatusOK, cards)
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeData(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	listings, pagination, err := h.svc.ProductsByCategory(r.Context(), category, page, limit)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"products":   listings,
		"pagination": pagination,
	})
}

func (h *CatalogHandler) Related(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validate.ProductID(id) {
		writeError(w, http.StatusBadRequest, "validation_error", "product id must be a 6-digit number")
		return
	}

	products, err := h.svc.RelatedProducts(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeData(w, http.StatusOK, products)
}

// pageParams parses ?page= and ?limit=, rejecting anything that is not
// a positive integer. Missing values fall back to the defaults.
func pageParams(w http.ResponseWriter, r *http.Request) (page, limit int, ok bool) {
	page, limit = defaultPage, defaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "validation_error", "page must be a positive integer")
			return 0, 0, false
		}
		page = parsed
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return 0, 0, false
		}
		limit = parsed
	}
	return page, limit, true
}

func (h *CatalogHandler) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidPage):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, catalog.ErrPageOutOfRange):
		writeError(w, http.StatusNotFound, "page_not_found", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")
	default:
		writeServerError(w, h.logger, err)
	}
}
