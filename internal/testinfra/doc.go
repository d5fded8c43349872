// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

// Package testinfra starts throwaway containers for integration tests.
//
// Everything here is behind the integration build tag and needs a Docker
// daemon; tests skip themselves through SkipIfNoDocker when none is running.
//
//	func TestRedisCache(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, redis.Container)
//
//	    c, err := cache.NewRedisCache(ctx, redis.URL, "test:", time.Minute)
//	    // ...
//	}
//
// Run with:
//
//	go test -tags integration ./internal/...
//
// The first run pulls the image; later runs use the local copy.
package testinfra
