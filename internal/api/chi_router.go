// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/moviebot-dev/moviebot/internal/middleware"
)

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	if router.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", router.metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())

		// ========================
		// Health Endpoints
		// ========================
		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(middleware.Compression)

			router.registerCatalogRoutes(r)
			router.registerFavoritesRoutes(r)
			r.Get("/recommendations", router.handler.Recommendations)
		})
	})

	return r
}

func (router *Router) registerCatalogRoutes(r chi.Router) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/search", router.handler.SearchMovies)
		r.Get("/discover", router.handler.DiscoverMovies)
		r.Get("/{id}/recommendations", router.handler.MovieRecommendations)
	})
	r.Get("/genres", router.handler.Genres)
}

func (router *Router) registerFavoritesRoutes(r chi.Router) {
	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", router.handler.ListFavorites)
		r.Post("/", router.handler.AddFavorite)
		r.Delete("/", router.handler.ClearFavorites)
		r.Get("/top-genres", router.handler.TopGenres)
		r.Get("/{id}", router.handler.GetFavorite)
		r.Delete("/{id}", router.handler.RemoveFavorite)
	})
}
