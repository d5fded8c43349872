// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

// Validated request parameters. Query structs carry a `query` tag so that
// validation errors name the parameter the client actually sent.
//
// Example usage:
//
//	req := SearchRequest{
//	    Query: r.URL.Query().Get("q"),
//	    Page:  getIntParam(r, "page", 1),
//	}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
//	    return
//	}

// SearchRequest is GET /movies/search.
type SearchRequest struct {
	Query    string `query:"q" validate:"required,max=200"`
	Page     int    `query:"page" validate:"min=1,max=500"`
	MinVotes int    `query:"min_votes" validate:"min=0"`
}

// DiscoverRequest is GET /movies/discover.
type DiscoverRequest struct {
	GenreID  int      `query:"genre_id" validate:"min=0"`
	Year     int      `query:"year" validate:"omitempty,min=1874,max=2100"`
	MinVote  *float64 `query:"min_vote" validate:"omitempty,min=0,max=10"`
	MinVotes *int     `query:"min_votes" validate:"omitempty,min=0"`
	SortBy   string   `query:"sort_by" validate:"omitempty,tmdb_sort"`
	Page     int      `query:"page" validate:"min=1,max=500"`
}

// MovieRecommendationsRequest is GET /movies/{id}/recommendations.
type MovieRecommendationsRequest struct {
	MovieID int `query:"id" validate:"required,gt=0"`
	Page    int `query:"page" validate:"min=1,max=500"`
}

// AddFavoriteRequest is the POST /favorites body. It mirrors the TMDB list
// item so clients can post a search or discover result unchanged.
type AddFavoriteRequest struct {
	ID            int     `json:"id" validate:"required,gt=0"`
	Title         string  `json:"title" validate:"required_without=OriginalTitle,max=500"`
	OriginalTitle string  `json:"original_title" validate:"max=500"`
	ReleaseDate   string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	VoteAverage   float64 `json:"vote_average" validate:"min=0,max=10"`
	VoteCount     int     `json:"vote_count" validate:"min=0"`
	Popularity    float64 `json:"popularity" validate:"min=0"`
	GenreIDs      []int   `json:"genre_ids" validate:"omitempty,max=50,dive,gt=0"`
	Overview      string  `json:"overview" validate:"max=10000"`
	PosterPath    string  `json:"poster_path" validate:"max=500"`
	BackdropPath  string  `json:"backdrop_path" validate:"max=500"`
	Adult         bool    `json:"adult"`
}

// TopGenresRequest is GET /favorites/top-genres.
type TopGenresRequest struct {
	N int `query:"n" validate:"min=1,max=50"`
}

// RecommendationsRequest is GET /recommendations.
// Limits above the configured maximum are clamped by the engine.
type RecommendationsRequest struct {
	Limit     int `query:"limit" validate:"min=0"`
	TopGenres int `query:"top_genres" validate:"min=0,max=50"`
}
