package api

import (
	"net/http"

	"github.com/dom/hero-builds/internal/api/handlers"
	"github.com/dom/hero-builds/internal/api/middleware"
	"github.com/dom/hero-builds/internal/config"
	"github.com/dom/hero-builds/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if cfg.Environment == "development" {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	heroHandler := handlers.NewHeroHandler(services.Catalog)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroHandler.List)
			r.Get("/{id}", heroHandler.Get)
			r.Get("/{id}/builds", heroHandler.ListBuilds)
			r.Get("/{id}/builds/{mood}", heroHandler.GetBuild)
		})
	})

	return r
}
