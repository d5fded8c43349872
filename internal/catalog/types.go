// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/moviebot-dev/moviebot/internal/models"
)

// DefaultMinVoteCount is the vote_count.gte floor applied to discover queries
// when the caller does not set one.
const DefaultMinVoteCount = 30

var (
	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("catalog: not found")

	// ErrUnauthorized is returned for HTTP 401, usually a bad or missing key.
	ErrUnauthorized = errors.New("catalog: unauthorized")

	// ErrInvalidMovieID is returned before any request when a movie id is not positive.
	ErrInvalidMovieID = errors.New("catalog: invalid movie id")
)

// StatusError is returned for unexpected HTTP statuses.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Page is one page of a TMDB list response.
type Page struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// DiscoverParams are the /discover/movie filters. Zero values are omitted,
// except MinVoteCount which falls back to DefaultMinVoteCount.
type DiscoverParams struct {
	GenreID        int
	Year           int
	MinVoteAverage *float64
	MinVoteCount   *int
	SortBy         string
	IncludeAdult   *bool
	Language       string
	Page           int
}

type genreListResponse struct {
	Genres []models.Genre `json:"genres"`
}

// Service is the catalog surface used by the HTTP API and the genre warmup
// service. Client and CircuitBreakerClient implement it.
type Service interface {
	SearchMovies(ctx context.Context, query string, page int) (*Page, error)
	Discover(ctx context.Context, p DiscoverParams) (*Page, error)
	DiscoverByGenre(ctx context.Context, genreID, minVoteCount int, sortBy string) ([]models.Movie, error)
	MovieRecommendations(ctx context.Context, movieID, page int) (*Page, error)
	GenreList(ctx context.Context) ([]models.Genre, error)
	Genres(ctx context.Context) (map[string]int, error)
}

var (
	_ Service = (*Client)(nil)
	_ Service = (*CircuitBreakerClient)(nil)
)
