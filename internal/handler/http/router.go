package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiffanyadora/storefront/internal/cart"
	"github.com/tiffanyadora/storefront/internal/catalog"
	"github.com/tiffanyadora/storefront/internal/favorites"
	"github.com/tiffanyadora/storefront/internal/notify"
	"github.com/tiffanyadora/storefront/internal/search"
	"github.com/tiffanyadora/storefront/pkg/health"
	"github.com/tiffanyadora/storefront/pkg/middleware"
)

// RouterDeps bundles everything the storefront router serves.
type RouterDeps struct {
	Sessions      *cart.Registry
	Catalog       *catalog.Service
	Importer      *catalog.Importer
	Search        *search.Service
	Favorites     *favorites.Store
	Notifications *notify.Center
	Health        *health.Handler
	Logger        *slog.Logger

	Environment        string
	CORSAllowedOrigins []string
	PprofAllowedCIDRs  []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: deps.CORSAllowedOrigins,
		ExposedHeaders: []string{"X-Correlation-ID", SessionHeader},
		Environment:    deps.Environment,
	}))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, deps.PprofAllowedCIDRs, deps.Logger)

	cartHandler := NewCartHandler(deps.Sessions, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	adminHandler := NewAdminHandler(deps.Catalog, deps.Importer, deps.Logger)
	searchHandler := NewSearchHandler(deps.Search, deps.Logger)
	favoritesHandler := NewFavoritesHandler(deps.Favorites, deps.Logger)
	notificationHandler := NewNotificationHandler(deps.Notifications)

	r.Route("/storefront", func(r chi.Router) {
		r.Use(SessionFromHeader)

		// Catalog browsing is safe to cache briefly.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(60))
			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{productID}", catalogHandler.GetProduct)
		})

		r.Get("/search", searchHandler.Search)
		r.Get("/search/suggest", searchHandler.Suggest)
		r.Get("/search/recent", searchHandler.Recent)

		r.Get("/favorites", favoritesHandler.List)
		r.Get("/favorites/{productID}", favoritesHandler.Status)
		r.Post("/favorites/{productID}/toggle", favoritesHandler.Toggle)

		r.Get("/notifications", notificationHandler.Active)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/cart", cartHandler.GetCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{itemID}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{itemID}", cartHandler.RemoveItem)
			r.Post("/checkout", cartHandler.Checkout)

			r.Post("/reviews", adminHandler.AddReview)
			r.Put("/reviews/{reviewID}", adminHandler.UpdateReview)
			r.Delete("/reviews/{reviewID}", adminHandler.DeleteReview)

			r.Post("/admin/products", adminHandler.CreateProduct)
			r.Put("/admin/products/{productID}", adminHandler.UpdateProduct)
			r.Delete("/admin/products/{productID}", adminHandler.DeleteProduct)
		})

		// CSV bodies bypass the JSON content-type check.
		r.Post("/admin/products/import", adminHandler.ImportProducts)
	})

	return r
}
