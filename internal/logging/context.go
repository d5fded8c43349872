// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type (
	traceKey  struct{}
	loggerKey struct{}
)

// Trace ties log lines and responses to the request that produced them.
//
// RequestID is unique per HTTP request. CorrelationID may be supplied by the
// client and reused across calls (a search followed by adding one of the
// results to favorites), so it is not necessarily unique.
type Trace struct {
	RequestID     string
	CorrelationID string
}

// NewTrace returns a trace with fresh ids.
func NewTrace() Trace {
	return Trace{RequestID: GenerateRequestID(), CorrelationID: GenerateCorrelationID()}
}

// Fields adds the non-empty ids to c.
//
//nolint:gocritic // zerolog.Context is designed to be passed by value
func (t Trace) Fields(c zerolog.Context) zerolog.Context {
	if t.CorrelationID != "" {
		c = c.Str("correlation_id", t.CorrelationID)
	}
	if t.RequestID != "" {
		c = c.Str("request_id", t.RequestID)
	}
	return c
}

// GenerateCorrelationID returns a short id for grouping related log lines.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// GenerateRequestID returns a full UUID for an HTTP request.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithTrace stores t in ctx, replacing any earlier trace.
func ContextWithTrace(ctx context.Context, t Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

// TraceFromContext returns the trace stored in ctx, or a zero Trace.
func TraceFromContext(ctx context.Context) Trace {
	t, _ := ctx.Value(traceKey{}).(Trace)
	return t
}

// ContextWithRequestID sets the request id and keeps any correlation id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	t := TraceFromContext(ctx)
	t.RequestID = id
	return ContextWithTrace(ctx, t)
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	return TraceFromContext(ctx).RequestID
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return TraceFromContext(ctx).CorrelationID
}

// ContextWithLogger stores a preconfigured logger in ctx.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger stored in ctx, or the global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns the context logger with the trace ids of ctx attached.
//
//	logging.Ctx(ctx).Info().Int("genre", id).Msg("discover query")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := TraceFromContext(ctx).Fields(LoggerFromContext(ctx).With()).Logger()
	return &l
}
