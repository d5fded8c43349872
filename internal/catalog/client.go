// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/moviebot-dev/moviebot/internal/cache"
	"github.com/moviebot-dev/moviebot/internal/config"
	"github.com/moviebot-dev/moviebot/internal/metrics"
	"github.com/moviebot-dev/moviebot/internal/models"
)

const (
	// maxErrorBodySize bounds how much of an error body is kept (64KB).
	maxErrorBodySize = 64 * 1024

	// maxResponseSize bounds successful response bodies (8MB).
	maxResponseSize = 8 * 1024 * 1024

	defaultLanguage = "pt-BR"
)

// ErrRateLimited is returned when TMDB keeps answering 429 after all retries.
var ErrRateLimited = errors.New("catalog: rate limit exceeded")

// Client talks to the TMDB v3 API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	bearerToken    string
	language       string
	includeAdult   bool
	httpClient     *http.Client
	limiter        *rate.Limiter
	cache          cache.Cacher
	maxRetries     int
	retryBaseDelay time.Duration
	logger         zerolog.Logger
}

// NewClient creates a TMDB client. responseCache may be nil to disable
// caching.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg *config.CatalogConfig, responseCache cache.Cacher, logger zerolog.Logger) *Client {
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		bearerToken:    cfg.BearerToken,
		language:       language,
		includeAdult:   cfg.IncludeAdult,
		httpClient:     &http.Client{Timeout: timeout},
		limiter:        limiter,
		cache:          responseCache,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: baseDelay,
		logger:         logger.With().Str("component", "catalog").Logger(),
	}
}

// SearchMovies queries /search/movie. A blank query returns an empty page
// without calling TMDB.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if strings.TrimSpace(query) == "" {
		return &Page{Page: page, Results: []models.Movie{}}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("language", c.language)
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))

	var out Page
	if err := c.getJSON(ctx, "search", "/search/movie", params, &out); err != nil {
		return nil, err
	}
	normalizePage(&out)
	return &out, nil
}

// Discover queries /discover/movie.
func (c *Client) Discover(ctx context.Context, p DiscoverParams) (*Page, error) {
	var out Page
	if err := c.getJSON(ctx, "discover", "/discover/movie", c.discoverQuery(p), &out); err != nil {
		return nil, err
	}
	normalizePage(&out)
	return &out, nil
}

func (c *Client) discoverQuery(p DiscoverParams) url.Values {
	params := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	language := p.Language
	if language == "" {
		language = c.language
	}
	params.Set("language", language)

	if p.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(p.GenreID))
	}
	if p.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(p.Year))
	}
	if p.MinVoteAverage != nil {
		params.Set("vote_average.gte", strconv.FormatFloat(*p.MinVoteAverage, 'f', -1, 64))
	}
	if p.SortBy != "" {
		params.Set("sort_by", p.SortBy)
	}
	if p.IncludeAdult != nil {
		params.Set("include_adult", strconv.FormatBool(*p.IncludeAdult))
	}

	minVotes := DefaultMinVoteCount
	if p.MinVoteCount != nil {
		minVotes = *p.MinVoteCount
	}
	params.Set("vote_count.gte", strconv.Itoa(minVotes))
	return params
}

// DiscoverByGenre returns the first discover page for one genre. It is the
// query the recommender issues per favorite genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID, minVoteCount int, sortBy string) ([]models.Movie, error) {
	page, err := c.Discover(ctx, DiscoverParams{
		GenreID:      genreID,
		MinVoteCount: &minVoteCount,
		SortBy:       sortBy,
		Page:         1,
	})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// MovieRecommendations queries /movie/{id}/recommendations.
func (c *Client) MovieRecommendations(ctx context.Context, movieID, page int) (*Page, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMovieID, movieID)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("language", c.language)

	var out Page
	path := "/movie/" + strconv.Itoa(movieID) + "/recommendations"
	if err := c.getJSON(ctx, "recommendations", path, params, &out); err != nil {
		return nil, err
	}
	normalizePage(&out)
	return &out, nil
}

// GenreList returns the movie genres in the configured language.
func (c *Client) GenreList(ctx context.Context) ([]models.Genre, error) {
	params := url.Values{}
	params.Set("language", c.language)

	var out genreListResponse
	if err := c.getJSON(ctx, "genres", "/genre/movie/list", params, &out); err != nil {
		return nil, err
	}
	if out.Genres == nil {
		out.Genres = []models.Genre{}
	}
	return out.Genres, nil
}

// Genres returns a map of normalized genre name to genre id, so lookups
// like "ficcao cientifica" match "Ficção científica".
func (c *Client) Genres(ctx context.Context) (map[string]int, error) {
	list, err := c.GenreList(ctx)
	if err != nil {
		return nil, err
	}
	return GenreMap(list), nil
}

// GenreMap keys genres by NormalizeText(name).
func GenreMap(genres []models.Genre) map[string]int {
	out := make(map[string]int, len(genres))
	for _, g := range genres {
		out[NormalizeText(g.Name)] = g.ID
	}
	return out
}

func normalizePage(p *Page) {
	if p.Results == nil {
		p.Results = []models.Movie{}
	}
}

// getJSON serves path from the cache or fetches it and decodes into out.
// endpoint labels metrics and logs.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	// Key is computed before credentials are attached.
	key := cache.GenerateKey(path, params)
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(data, out); err == nil {
				return nil
			}
			c.logger.Debug().Str("endpoint", endpoint).Msg("discarding undecodable cache entry")
			_ = c.cache.Delete(ctx, key)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("catalog %s: rate limiter: %w", endpoint, err)
		}
	}

	body, err := c.fetch(ctx, endpoint, path, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalog %s: decode response: %w", endpoint, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, 0); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("failed to cache catalog response")
		}
	}
	return nil
}

// fetch performs the GET and returns the body of a 200 response.
func (c *Client) fetch(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	reqURL := c.baseURL + path + "?" + query.Encode()

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, endpoint, reqURL)
	if err != nil {
		metrics.RecordCatalogRequest(endpoint, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()
	metrics.RecordCatalogRequest(endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w (%s)", ErrUnauthorized, endpoint)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w (%s)", ErrNotFound, endpoint)
	default:
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: read response: %w", endpoint, err)
	}
	return body, nil
}

// doRequestWithRateLimit performs the request, retrying HTTP 429 with
// exponential backoff (base, 2*base, 4*base...). A Retry-After header in
// seconds overrides the computed delay. Waits are cancellable through ctx.
func (c *Client) doRequestWithRateLimit(ctx context.Context, endpoint, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: create request: %w", endpoint, err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey == "" && c.bearerToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.bearerToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: HTTP request failed: %w", endpoint, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close()

		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d retries (%s)", ErrRateLimited, c.maxRetries, endpoint)
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		metrics.RecordCatalogRetry(endpoint)
		c.logger.Warn().
			Str("endpoint", endpoint).
			Dur("retry_delay", delay).
			Int("attempt", attempt+1).
			Int("max_retries", c.maxRetries).
			Msg("TMDB rate limited (HTTP 429), retrying")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// readBodyForError reads at most maxErrorBodySize bytes for error messages.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
