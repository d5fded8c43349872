// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/cache"
	"github.com/moviebot-dev/moviebot/internal/config"
)

const discoverBody = `{"page":1,"total_pages":1,"total_results":2,"results":[
 {"id":603,"title":"Matrix","vote_average":8.2,"vote_count":25000,"popularity":80.5,"genre_ids":[28,878],"overview":"Um hacker descobre a verdade."},
 {"id":604,"title":"Matrix Reloaded","vote_average":7.0,"vote_count":10,"popularity":40.1,"genre_ids":[28],"overview":""}]}`

func testConfig(baseURL string) *config.CatalogConfig {
	return &config.CatalogConfig{
		BaseURL:        baseURL,
		APIKey:         "v3key",
		Language:       "pt-BR",
		Timeout:        2 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	}
}

// newTestClient starts an httptest server with handler and returns a client
// pointed at it plus a counter of upstream calls.
func newTestClient(t *testing.T, handler http.HandlerFunc, c cache.Cacher, mutate ...func(*config.CatalogConfig)) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	for _, m := range mutate {
		m(cfg)
	}
	return NewClient(cfg, c, zerolog.New(io.Discard)), &calls
}

func TestSearchMoviesBlankQuery(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("blank query must not reach TMDB")
	}, nil)

	page, err := client.SearchMovies(context.Background(), "   ", 0)
	if err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}
	if page.Page != 1 || page.Results == nil || len(page.Results) != 0 {
		t.Errorf("page = %+v, want empty first page", page)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Errorf("upstream calls = %d, want 0", *calls)
	}
}

func TestSearchMoviesSendsQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "matrix" || q.Get("api_key") != "v3key" || q.Get("language") != "pt-BR" {
			t.Errorf("query = %v", q)
		}
		if q.Get("include_adult") != "false" {
			t.Errorf("include_adult = %q", q.Get("include_adult"))
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("v3 key must not send a bearer header")
		}
		_, _ = io.WriteString(w, discoverBody)
	}, nil)

	page, err := client.SearchMovies(context.Background(), "matrix", 1)
	if err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}
	if len(page.Results) != 2 || page.Results[0].ID != 603 {
		t.Fatalf("results = %+v", page.Results)
	}
	if got := page.Results[0].GenreIDs; len(got) != 2 || got[1] != 878 {
		t.Errorf("genre ids = %v", got)
	}
}

func TestBearerTokenAuth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer v4token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Query().Has("api_key") {
			t.Error("api_key must not be sent without a v3 key")
		}
		_, _ = io.WriteString(w, `{"genres":[]}`)
	}, nil, func(c *config.CatalogConfig) {
		c.APIKey = ""
		c.BearerToken = "v4token"
	})

	if _, err := client.GenreList(context.Background()); err != nil {
		t.Fatalf("GenreList() error = %v", err)
	}
}

func TestDiscoverQueryParams(t *testing.T) {
	minVote := 7.5
	adult := false
	tests := []struct {
		name   string
		params DiscoverParams
		want   map[string]string
		absent []string
	}{
		{
			name:   "defaults",
			params: DiscoverParams{},
			want:   map[string]string{"page": "1", "language": "pt-BR", "vote_count.gte": "30"},
			absent: []string{"with_genres", "sort_by", "include_adult", "primary_release_year"},
		},
		{
			name: "all filters",
			params: DiscoverParams{
				GenreID:        28,
				Year:           1999,
				MinVoteAverage: &minVote,
				SortBy:         "vote_average.desc",
				IncludeAdult:   &adult,
				Language:       "en-US",
				Page:           3,
			},
			want: map[string]string{
				"with_genres":          "28",
				"primary_release_year": "1999",
				"vote_average.gte":     "7.5",
				"sort_by":              "vote_average.desc",
				"include_adult":        "false",
				"language":             "en-US",
				"page":                 "3",
				"vote_count.gte":       "30",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				for k, v := range tt.want {
					if q.Get(k) != v {
						t.Errorf("%s = %q, want %q", k, q.Get(k), v)
					}
				}
				for _, k := range tt.absent {
					if q.Has(k) {
						t.Errorf("%s should be absent", k)
					}
				}
				_, _ = io.WriteString(w, `{"page":1,"results":[]}`)
			}, nil)

			page, err := client.Discover(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if page.Results == nil {
				t.Error("Results should be an empty slice, not nil")
			}
		})
	}
}

func TestDiscoverByGenre(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("with_genres") != "28" || q.Get("vote_count.gte") != "50" || q.Get("sort_by") != "popularity.desc" {
			t.Errorf("query = %v", q)
		}
		_, _ = io.WriteString(w, discoverBody)
	}, nil)

	movies, err := client.DiscoverByGenre(context.Background(), 28, 50, "popularity.desc")
	if err != nil {
		t.Fatalf("DiscoverByGenre() error = %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("len = %d, want 2", len(movies))
	}
}

func TestMovieRecommendationsInvalidID(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	for _, id := range []int{0, -5} {
		if _, err := client.MovieRecommendations(context.Background(), id, 1); !errors.Is(err, ErrInvalidMovieID) {
			t.Errorf("id %d: error = %v, want ErrInvalidMovieID", id, err)
		}
	}
	if *calls != 0 {
		t.Errorf("upstream calls = %d, want 0", *calls)
	}
}

func TestMovieRecommendationsPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603/recommendations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, discoverBody)
	}, nil)

	page, err := client.MovieRecommendations(context.Background(), 603, 1)
	if err != nil {
		t.Fatalf("MovieRecommendations() error = %v", err)
	}
	if page.TotalResults != 2 {
		t.Errorf("TotalResults = %d", page.TotalResults)
	}
}

func TestGenresNormalized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"genres":[{"id":28,"name":"Ação"},{"id":878,"name":"Ficção científica"}]}`)
	}, nil)

	genres, err := client.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	if genres["acao"] != 28 || genres["ficcao cientifica"] != 878 {
		t.Errorf("genres = %v", genres)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, func(err error) bool { return errors.Is(err, ErrUnauthorized) }},
		{http.StatusNotFound, func(err error) bool { return errors.Is(err, ErrNotFound) }},
		{http.StatusInternalServerError, func(err error) bool {
			var se *StatusError
			return errors.As(err, &se) && se.StatusCode == 500 && se.Body == "boom"
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, "boom")
			}, nil)

			_, err := client.GenreList(context.Background())
			if !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestRetryOn429(t *testing.T) {
	var n int32
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"genres":[{"id":12,"name":"Aventura"}]}`)
	}, nil)

	genres, err := client.GenreList(context.Background())
	if err != nil {
		t.Fatalf("GenreList() error = %v", err)
	}
	if len(genres) != 1 {
		t.Errorf("genres = %v", genres)
	}
	if *calls != 3 {
		t.Errorf("calls = %d, want 3", *calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	_, err := client.GenreList(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
	if *calls != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", *calls)
	}
}

func TestRetryWaitHonoursContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GenreList(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("backoff wait ignored context")
	}
}

func TestResponsesAreCached(t *testing.T) {
	c := cache.New("test", time.Minute, 0)
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, discoverBody)
	}, c)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.DiscoverByGenre(ctx, 28, 30, "popularity.desc"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if *calls != 1 {
		t.Errorf("upstream calls = %d, want 1", *calls)
	}

	// a different genre is a different key
	if _, err := client.DiscoverByGenre(ctx, 12, 30, "popularity.desc"); err != nil {
		t.Fatal(err)
	}
	if *calls != 2 {
		t.Errorf("upstream calls = %d, want 2", *calls)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	c := cache.New("test", time.Minute, 0)
	var fail atomic.Bool
	fail.Store(true)
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"genres":[]}`)
	}, c)

	if _, err := client.GenreList(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	fail.Store(false)
	if _, err := client.GenreList(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if *calls != 2 {
		t.Errorf("calls = %d, want 2", *calls)
	}
}

func TestReadBodyForErrorTruncates(t *testing.T) {
	big := make([]byte, maxErrorBodySize+100)
	for i := range big {
		big[i] = 'x'
	}
	got := readBodyForError(&sliceReader{b: big})
	if len(got) <= maxErrorBodySize {
		t.Fatalf("len = %d, want truncation marker", len(got))
	}
}

type sliceReader struct{ b []byte }

func (s *sliceReader) Read(p []byte) (int, error) {
	if len(s.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.b)
	s.b = s.b[n:]
	return n, nil
}
