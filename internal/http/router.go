package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Sessions   *Sessions
	Cart       *CartHandler
	Catalog    *CatalogHandler
	Auth       *AuthHandler
	Newsletter *NewsletterHandler
	Banners    *BannerHandler
	Site       *SiteHandler
	Pages      *Pages
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(h.Sessions.Resolve)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Get("/", h.Cart.Get)
		r.Get("/summary", h.Cart.Summary)
		r.Delete("/", h.Cart.Clear)
		r.Post("/{productId}", h.Cart.Add)
		r.Patch("/{productId}", h.Cart.Update)
		r.Delete("/{productId}", h.Cart.Remove)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.Catalog.List)
		r.Get("/featured", h.Catalog.Featured)
		r.Get("/{id}", h.Catalog.Get)
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.Catalog.Categories)
		r.Get("/related/{id}", h.Catalog.Related)
		r.Get("/{category}", h.Catalog.ByCategory)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/send-link/{email}", h.Auth.SendLink)
		r.Get("/verify-link/{token}", h.Auth.VerifyLink)
		r.Post("/logout", h.Auth.Logout)
	})

	r.Route("/api/newsletter", func(r chi.Router) {
		r.Post("/subscribe", h.Newsletter.Subscribe)
		r.Get("/unsubscribe/{token}", h.Newsletter.Unsubscribe)
		r.With(RequireAdmin).Get("/all", h.Newsletter.List)
		r.With(RequireAdmin).Post("/send", h.Newsletter.Send)
	})

	r.Route("/api/banners", func(r chi.Router) {
		r.Get("/", h.Banners.List)
		r.Get("/{id}", h.Banners.Get)
		r.With(RequireAdmin).Post("/", h.Banners.Create)
		r.With(RequireAdmin).Patch("/{id}", h.Banners.Update)
		r.With(RequireAdmin).Delete("/{id}", h.Banners.Delete)
	})

	r.Get("/api/site/layout", h.Site.Layout)
	r.Get("/api/images/{name}", h.Pages.Image)

	// storefront pages
	r.Group(func(r chi.Router) {
		r.Use(RequireAuthPage)
		r.Get("/", h.Pages.Serve("home.html"))
		r.Get("/cart", h.Pages.Serve("cart.html"))
		r.Get("/product/{id}", h.Pages.Serve("product.html"))
		r.Get("/category/{category}", h.Pages.Serve("category.html"))
	})
	r.Group(func(r chi.Router) {
		r.Use(RequireGuestPage)
		r.Get("/login", h.Pages.Serve("login.html"))
		r.Get("/register", h.Pages.Serve("register.html"))
		r.Get("/verify/{token}", h.Pages.Serve("verify.html"))
	})
	r.Handle("/assets/*", h.Pages.Assets())

	r.NotFound(h.Pages.NotFound)

	return r
}
