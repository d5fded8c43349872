// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package cache

import (
	"context"
	"fmt"
	"time"
)

// Cacher is the byte cache used by the catalog client. Both Cache and
// RedisCache implement it.
//
//	var c cache.Cacher = cache.New("catalog", 5*time.Minute, 0)
//	if data, ok := c.Get(ctx, key); ok {
//	    // decode data
//	}
type Cacher interface {
	// Get returns the stored bytes and true, or nil and false on a miss.
	// Backend errors are treated as misses.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value. A non-positive ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and tunes a cache backend.
type Config struct {
	// Name labels metrics for the memory backend.
	Name string

	// Backend is memory or redis.
	// Default: memory
	Backend string

	TTL             time.Duration
	CleanupInterval time.Duration

	// RedisURL and KeyPrefix are used by the redis backend only.
	RedisURL  string
	KeyPrefix string
}

// Open builds the configured backend. The redis backend pings the server
// before returning.
func Open(ctx context.Context, cfg Config) (Cacher, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return New(cfg.Name, cfg.TTL, cfg.CleanupInterval), nil
	case BackendRedis:
		return NewRedisCache(ctx, cfg.RedisURL, cfg.KeyPrefix, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*RedisCache)(nil)
)
