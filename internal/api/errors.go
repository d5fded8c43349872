// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"context"
	"errors"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/moviebot-dev/moviebot/internal/catalog"
	"github.com/moviebot-dev/moviebot/internal/favorites"
)

// Error codes for API responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeCatalogTimeout     = "CATALOG_TIMEOUT"
	ErrCodeStorage            = "STORAGE_ERROR"
	ErrCodeRecommendation     = "RECOMMENDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// respondCatalogError maps catalog and circuit breaker failures onto HTTP.
func respondCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidMovieID):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Movie id must be a positive integer", nil)
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Movie not found", nil)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, catalog.ErrRateLimited):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeCatalogUnavailable,
			"Movie catalog is temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeCatalogTimeout, "Movie catalog timed out", err)
	default:
		respondError(w, r, http.StatusBadGateway, ErrCodeCatalogUnavailable, "Movie catalog request failed", err)
	}
}

// respondStoreError maps favorites store failures onto HTTP.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, favorites.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Favorite not found", nil)
	case errors.Is(err, favorites.ErrInvalidItem):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Favorite must have a positive id", nil)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeStorage, "Favorites store failed", err)
	}
}
