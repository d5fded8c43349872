// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/moviebot-dev/moviebot/internal/models"
)

// defaultTopGenres is the n used by GET /favorites/top-genres.
const defaultTopGenres = 3

// GenreAffinity is one entry of the favorites genre profile.
type GenreAffinity struct {
	ID     int     `json:"id"`
	Name   string  `json:"name,omitempty"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// ListFavorites handles GET /favorites.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := h.favorites.List(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, items, start, intPtr(len(items)))
}

// GetFavorite handles GET /favorites/{id}.
func (h *Handler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "id must be a positive integer", nil)
		return
	}

	item, err := h.favorites.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, item, start, nil)
}

// AddFavorite handles POST /favorites. The body is a TMDB movie object;
// fields outside AddFavoriteRequest are rejected. A duplicate id answers
// 409 and leaves the stored entry untouched.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AddFavoriteRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	movie := req.toMovie()
	item := models.NewFavoriteItem(&movie, h.now())

	added, err := h.favorites.Add(r.Context(), item)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if !added {
		respondError(w, r, http.StatusConflict, ErrCodeConflict, "Movie is already a favorite", nil)
		return
	}

	h.logger.Info().Int("movie_id", item.ID).Str("title", sanitizeLogValue(item.Title)).Msg("favorite added")
	respondData(w, r, http.StatusCreated, item, start, nil)
}

// RemoveFavorite handles DELETE /favorites/{id}.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "id must be a positive integer", nil)
		return
	}

	removed, err := h.favorites.Remove(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Favorite not found", nil)
		return
	}

	h.logger.Info().Int("movie_id", id).Msg("favorite removed")
	respondData(w, r, http.StatusOK, map[string]int{"removed": id}, start, nil)
}

// ClearFavorites handles DELETE /favorites.
func (h *Handler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.favorites.Clear(r.Context()); err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.logger.Info().Msg("favorites cleared")
	respondData(w, r, http.StatusOK, map[string]bool{"cleared": true}, start, nil)
}

// TopGenres handles GET /favorites/top-genres?n=3. Genre names come from
// the catalog when it is reachable and are omitted otherwise.
func (h *Handler) TopGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := TopGenresRequest{N: getIntParam(r, "n", defaultTopGenres)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	profile, _, err := h.recommender.Profile(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	top := profile.TopGenres(req.N)
	names := h.genreNames(r.Context())

	out := make([]GenreAffinity, len(top))
	for i, id := range top {
		out[i] = GenreAffinity{
			ID:     id,
			Name:   names[id],
			Count:  profile.Counts[id],
			Weight: profile.Weights[id],
		}
	}
	respondData(w, r, http.StatusOK, out, start, intPtr(len(out)))
}

func (h *Handler) genreNames(ctx context.Context) map[int]string {
	genres, err := h.catalog.GenreList(ctx)
	if err != nil {
		h.logger.Debug().Err(err).Msg("genre names unavailable")
		return map[int]string{}
	}
	names := make(map[int]string, len(genres))
	for _, g := range genres {
		names[g.ID] = g.Name
	}
	return names
}

func (req *AddFavoriteRequest) toMovie() models.Movie {
	return models.Movie{
		ID:            req.ID,
		Title:         req.Title,
		OriginalTitle: req.OriginalTitle,
		ReleaseDate:   req.ReleaseDate,
		VoteAverage:   req.VoteAverage,
		VoteCount:     req.VoteCount,
		Popularity:    req.Popularity,
		GenreIDs:      req.GenreIDs,
		Overview:      req.Overview,
		PosterPath:    req.PosterPath,
		BackdropPath:  req.BackdropPath,
		Adult:         req.Adult,
	}
}
