// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"items": [...], "personalized": true},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "request_id": "4f1c..."}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "VALIDATION_ERROR", "message": "limit must be at most 100"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	// CorrelationID groups related requests; see X-Correlation-ID.
	CorrelationID string `json:"correlation_id,omitempty"`
	QueryTimeMS   int64  `json:"query_time_ms,omitempty"`
	Count         *int   `json:"count,omitempty"`
}

// APIError carries a machine-readable code and a human message.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid query parameters or body
//   - NOT_FOUND: favorite or movie does not exist
//   - CONFLICT: favorite already stored
//   - CATALOG_UNAVAILABLE: TMDB failed or the circuit breaker is open
//   - STORAGE_ERROR: the favorites store failed
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
