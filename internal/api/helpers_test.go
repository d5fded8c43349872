// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/catalog"
	"github.com/moviebot-dev/moviebot/internal/favorites"
	"github.com/moviebot-dev/moviebot/internal/models"
	"github.com/moviebot-dev/moviebot/internal/recommend"
)

// fakeCatalog implements catalog.Service for testing.
type fakeCatalog struct {
	mu sync.Mutex

	search   *catalog.Page
	discover *catalog.Page
	recs     map[int]*catalog.Page
	genres   []models.Genre
	byGenre  map[int][]models.Movie
	err      error
	genreErr error
	state    string

	lastDiscover catalog.DiscoverParams
	lastQuery    string
}

func (f *fakeCatalog) SearchMovies(_ context.Context, query string, page int) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return copyPage(f.search, page), nil
}

func (f *fakeCatalog) Discover(_ context.Context, p catalog.DiscoverParams) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastDiscover = p
	if f.err != nil {
		return nil, f.err
	}
	return copyPage(f.discover, p.Page), nil
}

func (f *fakeCatalog) DiscoverByGenre(_ context.Context, genreID, minVoteCount int, _ string) ([]models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Movie{}
	for _, m := range f.byGenre[genreID] {
		if m.VoteCount >= minVoteCount {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) MovieRecommendations(_ context.Context, movieID, page int) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if movieID <= 0 {
		return nil, catalog.ErrInvalidMovieID
	}
	p, ok := f.recs[movieID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return copyPage(p, page), nil
}

func (f *fakeCatalog) GenreList(_ context.Context) ([]models.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.genreErr != nil {
		return nil, f.genreErr
	}
	return f.genres, nil
}

func (f *fakeCatalog) Genres(ctx context.Context) (map[string]int, error) {
	genres, err := f.GenreList(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.GenreMap(genres), nil
}

func (f *fakeCatalog) State() string {
	if f.state == "" {
		return "closed"
	}
	return f.state
}

func copyPage(p *catalog.Page, page int) *catalog.Page {
	if p == nil {
		return &catalog.Page{Page: page, Results: []models.Movie{}}
	}
	out := *p
	out.Page = page
	out.Results = append([]models.Movie(nil), p.Results...)
	return &out
}

// failingStore implements favorites.Store with every call failing.
type failingStore struct{ err error }

func (s failingStore) List(context.Context) ([]models.FavoriteItem, error) { return nil, s.err }
func (s failingStore) Get(context.Context, int) (*models.FavoriteItem, error) {
	return nil, s.err
}
func (s failingStore) Add(context.Context, models.FavoriteItem) (bool, error) { return false, s.err }
func (s failingStore) Remove(context.Context, int) (bool, error)              { return false, s.err }
func (s failingStore) Contains(context.Context, int) (bool, error)            { return false, s.err }
func (s failingStore) Clear(context.Context) error                            { return s.err }
func (s failingStore) Close() error                                           { return nil }

var errDiskGone = errors.New("disk gone")

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newFileStore(t *testing.T) favorites.Store {
	t.Helper()
	store, err := favorites.NewFileStore(filepath.Join(t.TempDir(), "favorites.json"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store
}

// newTestRouter wires the real engine and router around the given fakes.
func newTestRouter(t *testing.T, cat *fakeCatalog, store favorites.Store) http.Handler {
	t.Helper()
	cfg := recommend.DefaultConfig()
	engine, err := recommend.NewEngine(cfg, cat, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	handler := NewHandler(cat, store, engine, zerolog.Nop())

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	return NewRouter(handler, NewChiMiddleware(mwCfg)).
		WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "# metrics\n")
		})).
		SetupChi()
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v\nbody: %s", method, target, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}

func tmdbMovie(id int, title string, votes int, genres ...int) models.Movie {
	return models.Movie{
		ID:          id,
		Title:       title,
		ReleaseDate: "2015-05-13",
		VoteAverage: 7.5,
		VoteCount:   votes,
		Popularity:  50,
		GenreIDs:    genres,
		Overview:    title + " overview",
	}
}
