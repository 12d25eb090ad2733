package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sohaibalidev/Zeevno/internal/banner"
)

type BannerHandler struct {
	repo   banner.Repository
	logger *log.Logger
}

func NewBannerHandler(repo banner.Repository, logger *log.Logger) *BannerHandler {
	return &BannerHandler{repo: repo, logger: logger}
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.repo.List(r.Context())
	if err != nil {
		writeServerError(w, h.logger, err)
		return
	}
	if banners == nil {
		banners = []banner.Banner{}
	}
	writeData(w, http.StatusOK, banners)
}

func (h *BannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.repo.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeBannerError(w, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

type bannerRequest struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Order    int    `json:"order"`
}

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "imageUrl is required")
		return
	}

	created, err := h.repo.Create(r.Context(), banner.Banner{
		ImageURL: req.ImageURL,
		Title:    req.Title,
		Link:     req.Link,
		Order:    req.Order,
	})
	if err != nil {
		writeServerError(w, h.logger, err)
		return
	}
	writeDataMessage(w, http.StatusCreated, created, "Banner created")
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd banner.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	updated, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		h.writeBannerError(w, err)
		return
	}
	writeDataMessage(w, http.StatusOK, updated, "Banner updated")
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeBannerError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Banner deleted")
}

func (h *BannerHandler) writeBannerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, banner.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "validation_error", "banner id must be a valid object id")
	case errors.Is(err, banner.ErrNotFound):
		writeError(w, http.StatusNotFound, "banner_not_found", "Banner not found")
	default:
		writeServerError(w, h.logger, err)
	}
}
