// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/demres/demres-go/internal/store"
)

// SQLiteCache is a persistent cache backed by the SQLite store.
// The monthly batch job uses it so warm translations survive between runs;
// the server shares the same file, so pre-generated translations are also
// visible to the on-demand endpoint.
type SQLiteCache struct {
	queries    *store.Queries
	defaultTTL time.Duration
	closed     atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewSQLiteCache creates a SQLite-backed cache on top of an opened store.
// The caller owns the database handle.
func NewSQLiteCache(queries *store.Queries, defaultTTL time.Duration) *SQLiteCache {
	return &SQLiteCache{
		queries:    queries,
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a value from the cache.
func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	val, err := c.queries.GetCacheEntry(ctx, key, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.misses.Add(1)
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	c.hits.Add(1)
	return val, nil
}

// Set stores a value in the cache with the specified TTL.
func (c *SQLiteCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	var expiresAt *time.Time
	if ttl != NoExpiry {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	if err := c.queries.SetCacheEntry(ctx, key, value, expiresAt); err != nil {
		return err
	}
	c.sets.Add(1)
	return nil
}

// Delete removes a key from the cache.
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.queries.DeleteCacheEntry(ctx, key)
}

// Clear removes all entries from the cache.
func (c *SQLiteCache) Clear(ctx context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.queries.ClearCacheEntries(ctx)
}

// Has checks if a key exists in the cache (and is not expired).
func (c *SQLiteCache) Has(ctx context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrCacheClosed
	}

	_, err := c.queries.GetCacheEntry(ctx, key, time.Now())
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close marks the cache closed. The database handle is owned by the caller
// and is not closed here.
func (c *SQLiteCache) Close() error {
	c.closed.Store(true)
	return nil
}

// Ping verifies the underlying database connection.
func (c *SQLiteCache) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.queries.Ping(ctx)
}

// PurgeExpired removes expired entries from the store.
// Called as maintenance at the start of a batch run.
func (c *SQLiteCache) PurgeExpired(ctx context.Context) (int64, error) {
	if c.closed.Load() {
		return 0, ErrCacheClosed
	}
	return c.queries.PurgeExpired(ctx, time.Now())
}

// Stats returns current cache statistics.
func (c *SQLiteCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	items, _ := c.queries.CountCacheEntries(ctx)

	return Stats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Items:   items,
		HitRate: hitRate,
	}
}

// ResetStats resets the cache statistics.
func (c *SQLiteCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.sets.Store(0)
}

var (
	_ Cacher        = (*SQLiteCache)(nil)
	_ StatsProvider = (*SQLiteCache)(nil)
)
