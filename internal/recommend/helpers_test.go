// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/moviebot-dev/moviebot/internal/models"
)

// fakeCatalog implements CatalogQuerier for testing.
type fakeCatalog struct {
	mu      sync.Mutex
	byGenre map[int][]models.Movie
	errs    map[int]error
	delays  map[int]time.Duration
	calls   []int
	params  []string
}

func (f *fakeCatalog) DiscoverByGenre(ctx context.Context, genreID, minVoteCount int, sortBy string) ([]models.Movie, error) {
	f.mu.Lock()
	f.calls = append(f.calls, genreID)
	f.params = append(f.params, sortBy)
	delay := f.delays[genreID]
	err := f.errs[genreID]
	movies := f.byGenre[genreID]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.VoteCount >= minVoteCount {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeFavorites implements FavoritesLister for testing.
type fakeFavorites struct {
	items []models.FavoriteItem
	err   error
}

func (f *fakeFavorites) List(_ context.Context) ([]models.FavoriteItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func movie(id int, vote, pop float64, overview string, genres ...int) models.Movie {
	return models.Movie{
		ID:          id,
		Title:       "movie",
		VoteAverage: vote,
		VoteCount:   100,
		Popularity:  pop,
		GenreIDs:    genres,
		Overview:    overview,
	}
}

func favorite(id int, overview string, genres ...int) models.FavoriteItem {
	return models.FavoriteItem{ID: id, Title: "fav", Overview: overview, GenreIDs: genres}
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.QueryTimeout = time.Second
	return cfg
}

func poolOf(movies ...models.Movie) *CandidatePool {
	p := NewCandidatePool(len(movies))
	for i := range movies {
		p.Put(&movies[i])
	}
	return p
}
