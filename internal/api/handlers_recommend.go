// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/moviebot-dev/moviebot/internal/middleware"
	"github.com/moviebot-dev/moviebot/internal/recommend"
)

// Recommendations handles GET /recommendations?limit=&top_genres=.
//
// With no genre signal in the favorites the response is an empty,
// non-personalized list with status 200. Per-genre catalog failures are
// absorbed by the engine; only store failures and cancellation surface here.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := RecommendationsRequest{
		Limit:     getIntParam(r, "limit", 0),
		TopGenres: getIntParam(r, "top_genres", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	resp, err := h.recommender.Recommend(r.Context(), recommend.Request{
		Limit:     req.Limit,
		TopGenres: req.TopGenres,
		RequestID: middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			respondError(w, r, http.StatusGatewayTimeout, ErrCodeCatalogTimeout, "Recommendation timed out", err)
		case errors.Is(err, context.Canceled):
			// client went away; nothing useful to send
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeRecommendation, "Request cancelled", err)
		default:
			respondError(w, r, http.StatusInternalServerError, ErrCodeRecommendation, "Could not build recommendations", err)
		}
		return
	}

	respondData(w, r, http.StatusOK, resp, start, intPtr(len(resp.Items)))
}
