// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package middleware

import (
	"context"
	"net/http"

	"github.com/moviebot-dev/moviebot/internal/logging"
)

// RequestIDHeader is read from upstream proxies and echoed on every response.
const RequestIDHeader = "X-Request-ID"

// CorrelationIDHeader lets a client group several requests under one id.
const CorrelationIDHeader = "X-Correlation-ID"

// maxRequestIDLen bounds client-supplied ids before they reach the logs.
const maxRequestIDLen = 64

// RequestID assigns every request a logging.Trace and a request-scoped
// logger.
//
// Incoming X-Request-ID and X-Correlation-ID values are kept when they are
// short and printable; otherwise fresh ids are generated. Both ids are echoed
// on the response and attached to the logger returned by logging.Ctx, so
// engine and catalog log lines for the same request share them.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trace := logging.Trace{
			RequestID:     r.Header.Get(RequestIDHeader),
			CorrelationID: r.Header.Get(CorrelationIDHeader),
		}
		if !validRequestID(trace.RequestID) {
			trace.RequestID = logging.GenerateRequestID()
		}
		if !validRequestID(trace.CorrelationID) {
			trace.CorrelationID = logging.GenerateCorrelationID()
		}

		w.Header().Set(RequestIDHeader, trace.RequestID)
		w.Header().Set(CorrelationIDHeader, trace.CorrelationID)

		base := logging.LoggerFromContext(r.Context())
		ctx := logging.ContextWithTrace(r.Context(), trace)
		ctx = logging.ContextWithLogger(ctx, base.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

// GetCorrelationID extracts the correlation ID from context.
func GetCorrelationID(ctx context.Context) string {
	return logging.CorrelationIDFromContext(ctx)
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
