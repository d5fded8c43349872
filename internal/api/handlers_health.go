// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/moviebot-dev/moviebot/internal/metrics"
)

// readinessTimeout bounds the favorites store probe.
const readinessTimeout = 2 * time.Second

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status        string            `json:"status"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Checks        map[string]string `json:"checks,omitempty"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	metrics.UpdateUptime(h.startTime)

	respondData(w, r, http.StatusOK, HealthStatus{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}, start, nil)
}

// HealthReady reports whether the service can answer requests.
//
// The favorites store must be readable. An open circuit breaker on the
// catalog marks the service degraded but still ready, since favorites
// endpoints keep working without TMDB.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string, 2)
	status := "ok"
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if _, err := h.favorites.List(ctx); err != nil {
		checks["favorites"] = "error: " + sanitizeLogValue(err.Error())
		status = "unavailable"
		code = http.StatusServiceUnavailable
	} else {
		checks["favorites"] = "ok"
	}

	if bs, ok := h.catalog.(BreakerStater); ok {
		state := bs.State()
		checks["catalog_breaker"] = state
		if state == "open" && status == "ok" {
			status = "degraded"
		}
	}

	respondData(w, r, code, HealthStatus{
		Status:        status,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Checks:        checks,
	}, start, nil)
}
