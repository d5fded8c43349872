// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/logging"
	"github.com/moviebot-dev/moviebot/internal/metrics"
	"github.com/moviebot-dev/moviebot/internal/models"
)

func newTestEngine(t *testing.T, cat CatalogQuerier, favs FavoritesLister) *Engine {
	t.Helper()
	e, err := NewEngine(testConfig(), cat, favs, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngine(t *testing.T) {
	cat := &fakeCatalog{}
	favs := &fakeFavorites{}

	if _, err := NewEngine(nil, cat, favs, zerolog.Nop()); err != nil {
		t.Errorf("nil config should use defaults: %v", err)
	}

	bad := DefaultConfig()
	bad.Weights = Weights{0.5, 0.5, 0.5}
	_, err := NewEngine(bad, cat, favs, zerolog.Nop())
	if !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("err = %v, want ErrInvalidWeights", err)
	}

	if _, err := NewEngine(nil, nil, favs, zerolog.Nop()); err == nil {
		t.Error("missing catalog should fail")
	}
}

func TestRecommendNoFavorites(t *testing.T) {
	cat := &fakeCatalog{}
	e := newTestEngine(t, cat, &fakeFavorites{})

	before := testutil.ToFloat64(metrics.RecommendRequests.WithLabelValues(OutcomeEmpty))
	resp, err := e.Recommend(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Personalized {
		t.Error("Personalized = true with no favorites")
	}
	if len(resp.Items) != 0 || resp.Items == nil {
		t.Errorf("Items = %#v, want empty slice", resp.Items)
	}
	if cat.callCount() != 0 {
		t.Errorf("catalog called %d times", cat.callCount())
	}
	if got := testutil.ToFloat64(metrics.RecommendRequests.WithLabelValues(OutcomeEmpty)) - before; got != 1 {
		t.Errorf("empty outcome delta = %v", got)
	}
}

func TestRecommendFavoritesWithoutGenres(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{}, &fakeFavorites{items: []models.FavoriteItem{favorite(1, "a dream")}})
	resp, err := e.Recommend(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Personalized || len(resp.Items) != 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRecommendFavoritesError(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{}, &fakeFavorites{err: errors.New("disk gone")})
	before := testutil.ToFloat64(metrics.RecommendRequests.WithLabelValues(OutcomeError))
	if _, err := e.Recommend(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if got := testutil.ToFloat64(metrics.RecommendRequests.WithLabelValues(OutcomeError)) - before; got != 1 {
		t.Errorf("error outcome delta = %v", got)
	}
}

func scenarioCatalog() *fakeCatalog {
	return &fakeCatalog{byGenre: map[int][]models.Movie{
		28: {
			movie(100, 7.5, 80, "A thief steals secrets inside dreams", 28, 878),
			movie(101, 6.0, 20, "Cars race through the desert", 28),
			movie(1, 8.8, 90, "favorite that must be excluded", 28),
		},
		12: {
			movie(200, 8.0, 60, "An expedition searches for treasure", 12),
			movie(100, 7.5, 80, "A thief steals secrets inside dreams", 28, 878),
		},
	}}
}

func scenarioFavorites() *fakeFavorites {
	return &fakeFavorites{items: []models.FavoriteItem{
		favorite(1, "A skilled thief enters dreams to steal secrets", 28, 12),
		favorite(2, "Thieves plan a heist", 28),
	}}
}

func TestRecommendScenario(t *testing.T) {
	e := newTestEngine(t, scenarioCatalog(), scenarioFavorites())

	ctx := logging.ContextWithRequestID(context.Background(), "req-123")
	resp, err := e.Recommend(ctx, Request{Limit: 10})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if !resp.Personalized {
		t.Error("Personalized = false")
	}
	if !reflect.DeepEqual(resp.TopGenres, []int{28, 12}) {
		t.Errorf("TopGenres = %v, want [28 12]", resp.TopGenres)
	}
	if resp.TotalCandidates != 3 {
		t.Errorf("TotalCandidates = %d, want 3", resp.TotalCandidates)
	}
	if resp.Metadata.RequestID != "req-123" {
		t.Errorf("RequestID = %q", resp.Metadata.RequestID)
	}
	for _, item := range resp.Items {
		if item.Movie.ID == 1 || item.Movie.ID == 2 {
			t.Errorf("favorite %d recommended", item.Movie.ID)
		}
		if item.Score < 0 || item.Score > 1+1e-9 {
			t.Errorf("score %v out of range", item.Score)
		}
	}
	if resp.Items[0].Movie.ID != 100 {
		t.Errorf("top = %d, want 100 (matching text, both genres)", resp.Items[0].Movie.ID)
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i].Score > resp.Items[i-1].Score {
			t.Errorf("items not sorted at %d", i)
		}
	}
}

func TestRecommendLimitAndTopGenres(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		wantItems  int
		wantGenres []int
	}{
		{"limit 1", Request{Limit: 1}, 1, []int{28, 12}},
		{"default limit", Request{}, 3, []int{28, 12}},
		{"limit clamped to max", Request{Limit: 1000}, 3, []int{28, 12}},
		{"one genre", Request{TopGenres: 1}, 2, []int{28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, scenarioCatalog(), scenarioFavorites())
			resp, err := e.Recommend(context.Background(), tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if len(resp.Items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(resp.Items), tt.wantItems)
			}
			if !reflect.DeepEqual(resp.TopGenres, tt.wantGenres) {
				t.Errorf("TopGenres = %v, want %v", resp.TopGenres, tt.wantGenres)
			}
		})
	}
}

func TestRecommendEmptyTextFallsBackToOtherSignals(t *testing.T) {
	cat := &fakeCatalog{byGenre: map[int][]models.Movie{
		28: {movie(10, 6.0, 10, "", 28), movie(11, 9.0, 90, "", 28)},
	}}
	favs := &fakeFavorites{items: []models.FavoriteItem{favorite(1, "", 28)}}
	e := newTestEngine(t, cat, favs)

	resp, err := e.Recommend(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range resp.Items {
		if item.Signals.TextRaw != 0 || item.Signals.Text != 0 {
			t.Errorf("movie %d text signals = %+v, want 0", item.Movie.ID, item.Signals)
		}
	}
	if resp.Items[0].Movie.ID != 11 {
		t.Errorf("top = %d, want the better rated and more popular movie", resp.Items[0].Movie.ID)
	}
}

func TestRecommendNoCandidates(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{}, scenarioFavorites())
	resp, err := e.Recommend(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Personalized || len(resp.Items) != 0 || resp.TotalCandidates != 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	e := newTestEngine(t, scenarioCatalog(), scenarioFavorites())

	first, err := e.Recommend(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	for run := 0; run < 5; run++ {
		again, err := e.Recommend(context.Background(), Request{})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first.Items, again.Items) {
			t.Fatalf("run %d produced a different ranking", run)
		}
	}
}

func TestRecommendConcurrent(t *testing.T) {
	e := newTestEngine(t, scenarioCatalog(), scenarioFavorites())

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Recommend(context.Background(), Request{}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Recommend: %v", err)
	}
}

func TestEngineProfile(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{}, scenarioFavorites())
	p, favs, err := e.Profile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 2 || !reflect.DeepEqual(p.TopGenres(0), []int{28, 12}) {
		t.Errorf("profile = %+v, favorites = %d", p, len(favs))
	}
}

func TestRecommendCarriesTrace(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)
	e, err := NewEngine(testConfig(), scenarioCatalog(), scenarioFavorites(), logger)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	ctx := logging.ContextWithTrace(context.Background(), logging.Trace{
		RequestID:     "req-9",
		CorrelationID: "flow-1",
	})
	resp, err := e.Recommend(ctx, Request{Limit: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if resp.Metadata.RequestID != "req-9" || resp.Metadata.CorrelationID != "flow-1" {
		t.Errorf("metadata ids = %q, %q; want req-9, flow-1", resp.Metadata.RequestID, resp.Metadata.CorrelationID)
	}
	out := buf.String()
	if !strings.Contains(out, `"correlation_id":"flow-1"`) || !strings.Contains(out, `"request_id":"req-9"`) {
		t.Errorf("engine log lines missing trace ids: %s", out)
	}
}
