// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// guard.go provides a Valkey-backed in-flight lease per theme slug.
// Two submissions of the same theme racing each other would otherwise
// clone, push, and open pull requests side by side; the lease rejects
// the second one while the first is still running.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// guardKeyPrefix is the Valkey key prefix for in-flight leases.
	guardKeyPrefix = "submit:"

	// DefaultGuardTTL bounds how long a lease can outlive a crashed run.
	DefaultGuardTTL = 10 * time.Minute
)

// SubmitGuard hands out one lease per theme slug at a time.
type SubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitGuard creates a guard backed by the given Valkey client.
func NewSubmitGuard(client *redis.Client, ttl time.Duration) *SubmitGuard {
	if ttl == 0 {
		ttl = DefaultGuardTTL
	}
	return &SubmitGuard{client: client, ttl: ttl}
}

// Acquire takes the lease for a slug. It returns false when another
// submission for the same slug is already in flight. On backend errors the
// guard fails open and the submission proceeds unguarded.
func (g *SubmitGuard) Acquire(ctx context.Context, slug string) bool {
	ok, err := g.client.SetNX(ctx, guardKeyPrefix+slug, 1, g.ttl).Result()
	if err != nil {
		slog.Warn("submit guard acquire error", "slug", slug, "error", err)
		return true
	}
	return ok
}

// Release frees the lease once the run finishes, successful or not.
func (g *SubmitGuard) Release(ctx context.Context, slug string) {
	if err := g.client.Del(ctx, guardKeyPrefix+slug).Err(); err != nil {
		slog.Warn("submit guard release error", "slug", slug, "error", err)
	}
}
