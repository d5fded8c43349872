// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package cache stores raw TMDB responses so repeated catalog lookups skip the
network.

Two backends implement Cacher:

  - Cache: in-process map with TTL expiry. Expired entries are removed on
    read and by the Serve janitor, which runs under the supervisor tree.
  - RedisCache: shared cache on Redis (go-redis v8). Expiry is delegated to
    Redis; keys are namespaced with a configurable prefix.

Keys come from GenerateKey, which hashes the endpoint parameters with
sha256. Credentials are never part of the parameters, so keys are safe to
log.

	c, err := cache.Open(ctx, cache.Config{
	    Name:    "catalog",
	    Backend: cfg.Cache.Backend,
	    TTL:     cfg.Cache.TTL,
	})
	key := cache.GenerateKey("discover", params)
	if data, ok := c.Get(ctx, key); ok {
	    // decode
	}

Hit, miss, eviction and size counters are exported through the metrics
package with the cache name as the cache_type label.
*/
package cache
