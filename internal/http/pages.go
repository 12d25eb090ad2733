package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Pages serves the storefront's static HTML pages and assets from the
// public directory. The frontend is plain files; gating who sees which
// page is the router's job.
type Pages struct {
	dir string
}

func NewPages(dir string) *Pages {
	return &Pages{dir: dir}
}

// Serve returns a handler for one named page under public/pages.
func (p *Pages) Serve(name string) http.HandlerFunc {
	path := filepath.Join(p.dir, "pages", name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

// Assets serves the static asset tree (css, js, fonts).
func (p *Pages) Assets() http.Handler {
	return http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(p.dir, "assets"))))
}

// Image serves a single product or banner image by filename. Names with
// path separators are rejected so the route cannot escape the images
// directory.
func (p *Pages) Image(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid image name")
		return
	}
	http.ServeFile(w, r, filepath.Join(p.dir, "images", name))
}

// NotFound answers unknown routes: JSON for API paths, the 404 page for
// everything else.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "not_found", "The requested resource does not exist")
		return
	}

	body, err := os.ReadFile(filepath.Join(p.dir, "pages", "404.html"))
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}
