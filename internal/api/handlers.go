// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/catalog"
	"github.com/moviebot-dev/moviebot/internal/favorites"
	"github.com/moviebot-dev/moviebot/internal/models"
	"github.com/moviebot-dev/moviebot/internal/recommend"
)

// Recommender is the engine surface the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Profile(ctx context.Context) (recommend.GenreProfile, []models.FavoriteItem, error)
}

// BreakerStater is implemented by catalog.CircuitBreakerClient. When the
// catalog passed to NewHandler implements it, readiness reports the state.
type BreakerStater interface {
	State() string
}

var _ Recommender = (*recommend.Engine)(nil)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response writers and parameter parsing
//   - handlers_health.go: liveness and readiness
//   - handlers_movies.go: catalog search, discover, recommendations, genres
//   - handlers_favorites.go: favorites CRUD and top genres
//   - handlers_recommend.go: personalized recommendations
type Handler struct {
	catalog     catalog.Service
	favorites   favorites.Store
	recommender Recommender
	logger      zerolog.Logger
	startTime   time.Time
	now         func() time.Time
}

// NewHandler creates a new API handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(cat catalog.Service, store favorites.Store, rec Recommender, logger zerolog.Logger) *Handler {
	return &Handler{
		catalog:     cat,
		favorites:   store,
		recommender: rec,
		logger:      logger.With().Str("component", "api").Logger(),
		startTime:   time.Now(),
		now:         time.Now,
	}
}
