// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/moviebot-dev/moviebot/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDefaultChiMiddlewareConfig(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()

	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want empty", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowCredentials {
		t.Error("CORSAllowCredentials should default to false")
	}
	if cfg.RateLimitRequests != 100 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d per %v, want 100 per minute", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if cfg.RateLimitDisabled {
		t.Error("rate limiting should be enabled by default")
	}
}

func TestNewChiMiddlewareFromSecurity(t *testing.T) {
	tests := []struct {
		name         string
		sec          *config.SecurityConfig
		wantOrigins  int
		wantRequests int
		wantWindow   time.Duration
		wantDisabled bool
	}{
		{"nil section", nil, 0, 100, time.Minute, false},
		{
			"explicit values",
			&config.SecurityConfig{
				CORSOrigins:     []string{"https://movies.example.com"},
				RateLimitReqs:   10,
				RateLimitWindow: 30 * time.Second,
			},
			1, 10, 30 * time.Second, false,
		},
		{
			"zero values keep defaults",
			&config.SecurityConfig{RateLimitDisabled: true},
			0, 100, time.Minute, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewChiMiddlewareFromSecurity(tt.sec)
			if len(m.config.CORSAllowedOrigins) != tt.wantOrigins {
				t.Errorf("origins = %v", m.config.CORSAllowedOrigins)
			}
			if m.config.RateLimitRequests != tt.wantRequests {
				t.Errorf("requests = %d, want %d", m.config.RateLimitRequests, tt.wantRequests)
			}
			if m.config.RateLimitWindow != tt.wantWindow {
				t.Errorf("window = %v, want %v", m.config.RateLimitWindow, tt.wantWindow)
			}
			if m.config.RateLimitDisabled != tt.wantDisabled {
				t.Errorf("disabled = %v, want %v", m.config.RateLimitDisabled, tt.wantDisabled)
			}
		})
	}
}

func TestRateLimit_RejectsWithJSON(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	h := NewChiMiddleware(cfg).RateLimit()(okHandler())

	var codes []int
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
		req.RemoteAddr = "192.0.2.10:4000"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want [200 200 429]", codes)
	}

	var env envelope
	if err := json.Unmarshal(last.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode 429 body: %v", err)
	}
	if env.Error == nil || env.Error.Code != ErrCodeRateLimited {
		t.Errorf("error = %+v, want %s", env.Error, ErrCodeRateLimited)
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	h := NewChiMiddleware(cfg).RateLimit()(okHandler())

	for _, addr := range []string{"192.0.2.1:1", "192.0.2.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: first request status = %d", addr, rec.Code)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	m := NewChiMiddleware(cfg)

	for name, mw := range map[string]func(http.Handler) http.Handler{
		"default": m.RateLimit(),
		"health":  m.RateLimitHealth(),
	} {
		h := mw(okHandler())
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("%s: request %d status = %d", name, i, rec.Code)
			}
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://movies.example.com"}
	h := NewChiMiddleware(cfg).CORS()(okHandler())

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://movies.example.com", "https://movies.example.com"},
		{"https://evil.example.net", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/favorites", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
			t.Errorf("origin %s: Allow-Origin = %q, want %q", tt.origin, got, tt.wantAllow)
		}
	}
}

func TestAPISecurityHeaders_HSTS(t *testing.T) {
	h := APISecurityHeaders()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	hsts := rec.Header().Get("Strict-Transport-Security")
	if !strings.HasPrefix(hsts, "max-age=") {
		t.Errorf("HSTS = %q, want max-age directive", hsts)
	}
	if rec.Header().Get("Referrer-Policy") == "" {
		t.Error("Referrer-Policy missing")
	}
}
