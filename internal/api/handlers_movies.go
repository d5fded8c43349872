// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/moviebot-dev/moviebot/internal/catalog"
	"github.com/moviebot-dev/moviebot/internal/models"
)

// MovieView is a catalog movie annotated with its favorite status.
type MovieView struct {
	models.Movie
	IsFavorite bool `json:"is_favorite"`
}

// MoviePage is a page of catalog results.
type MoviePage struct {
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
	Results      []MovieView `json:"results"`
}

// SearchMovies handles GET /movies/search?q=&page=&min_votes=.
// Results below min_votes are dropped after the catalog responds.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := SearchRequest{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Page:     getIntParam(r, "page", 1),
		MinVotes: getIntParam(r, "min_votes", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	page, err := h.catalog.SearchMovies(r.Context(), req.Query, req.Page)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	if req.MinVotes > 0 {
		page.Results = catalog.FilterByMinVotes(page.Results, req.MinVotes)
	}

	h.respondPage(w, r, page, start)
}

// DiscoverMovies handles GET /movies/discover.
func (h *Handler) DiscoverMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := DiscoverRequest{
		GenreID:  getIntParam(r, "genre_id", 0),
		Year:     getIntParam(r, "year", 0),
		MinVote:  getOptionalFloatParam(r, "min_vote"),
		MinVotes: getOptionalIntParam(r, "min_votes"),
		SortBy:   strings.TrimSpace(r.URL.Query().Get("sort_by")),
		Page:     getIntParam(r, "page", 1),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	page, err := h.catalog.Discover(r.Context(), catalog.DiscoverParams{
		GenreID:        req.GenreID,
		Year:           req.Year,
		MinVoteAverage: req.MinVote,
		MinVoteCount:   req.MinVotes,
		SortBy:         req.SortBy,
		Page:           req.Page,
	})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}

	h.respondPage(w, r, page, start)
}

// MovieRecommendations handles GET /movies/{id}/recommendations, TMDB's
// own "similar titles" list for one movie.
func (h *Handler) MovieRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, _ := pathID(r, "id")
	req := MovieRecommendationsRequest{
		MovieID: id,
		Page:    getIntParam(r, "page", 1),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	page, err := h.catalog.MovieRecommendations(r.Context(), req.MovieID, req.Page)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}

	h.respondPage(w, r, page, start)
}

// Genres handles GET /genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	genres, err := h.catalog.GenreList(r.Context())
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, genres, start, intPtr(len(genres)))
}

func (h *Handler) respondPage(w http.ResponseWriter, r *http.Request, page *catalog.Page, start time.Time) {
	favs := h.favoriteIDs(r.Context())

	views := make([]MovieView, len(page.Results))
	for i := range page.Results {
		_, fav := favs[page.Results[i].ID]
		views[i] = MovieView{Movie: page.Results[i], IsFavorite: fav}
	}

	respondData(w, r, http.StatusOK, MoviePage{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
		Results:      views,
	}, start, intPtr(len(views)))
}

// favoriteIDs returns the stored ids. A store failure only loses the
// is_favorite annotation, so it is logged and an empty set returned.
func (h *Handler) favoriteIDs(ctx context.Context) map[int]struct{} {
	items, err := h.favorites.List(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("could not load favorites for annotation")
		return map[int]struct{}{}
	}
	ids := make(map[int]struct{}, len(items))
	for i := range items {
		ids[items[i].ID] = struct{}{}
	}
	return ids
}
