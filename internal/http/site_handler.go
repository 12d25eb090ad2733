package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/sohaibalidev/Zeevno/internal/site"
)

type SiteHandler struct {
	repo   site.Repository
	logger *log.Logger
}

func NewSiteHandler(repo site.Repository, logger *log.Logger) *SiteHandler {
	return &SiteHandler{repo: repo, logger: logger}
}

func (h *SiteHandler) Layout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.repo.Layout(r.Context())
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			writeError(w, http.StatusNotFound, "settings_not_found", "Layout settings have not been configured")
			return
		}
		writeServerError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, layout)
}
