package router

import (
	"net/http"

	"storefront-sync-api/internal/handler"
	"storefront-sync-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	InventoryHandler *handler.InventoryHandler
	MetricsHandler   http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
		r.Get("/api/health", cfg.Handler.Health)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Inventory wire contract consumed by the sync client
	if cfg.InventoryHandler != nil {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", cfg.InventoryHandler.ListProducts)
			r.Post("/", cfg.InventoryHandler.CreateProduct)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.InventoryHandler.GetProduct)
				r.Post("/", cfg.InventoryHandler.ConditionalGet)
				r.Patch("/", cfg.InventoryHandler.UpdateMaxQuantity)
				r.Get("/timestamp", cfg.InventoryHandler.Timestamp)
			})
		})
	}

	return r
}
