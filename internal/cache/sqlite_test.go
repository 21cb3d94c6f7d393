// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/demres/demres-go/internal/store"
)

func testSQLiteCache(t *testing.T, ttl time.Duration) *SQLiteCache {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return NewSQLiteCache(store.New(db), ttl)
}

func TestSQLiteCache_BasicOperations(t *testing.T) {
	cache := testSQLiteCache(t, time.Hour)
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	has, err := cache.Has(ctx, "key1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected key1 to exist")
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestSQLiteCache_Expiration(t *testing.T) {
	cache := testSQLiteCache(t, 50*time.Millisecond)
	ctx := context.Background()

	if err := cache.Set(ctx, "expiring", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := cache.Get(ctx, "expiring"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestSQLiteCache_NoExpirySurvivesPurge(t *testing.T) {
	cache := testSQLiteCache(t, 10*time.Millisecond)
	ctx := context.Background()

	_ = cache.Set(ctx, "forever", []byte("v"), NoExpiry)
	_ = cache.Set(ctx, "short", []byte("v"), 0)

	time.Sleep(30 * time.Millisecond)

	if _, err := cache.PurgeExpired(ctx); err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}

	if _, err := cache.Get(ctx, "forever"); err != nil {
		t.Errorf("NoExpiry entry must survive purge, got %v", err)
	}
	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss for purged entry, got %v", err)
	}
}

func TestSQLiteCache_Clear(t *testing.T) {
	cache := testSQLiteCache(t, time.Hour)
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 0)
	_ = cache.Set(ctx, "b", []byte("2"), 0)

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if has, _ := cache.Has(ctx, "a"); has {
		t.Error("expected cache to be empty after Clear")
	}
}
