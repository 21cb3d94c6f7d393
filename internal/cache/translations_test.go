// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"
)

func TestTranslationCache_RoundTrip(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()
	tc := NewTranslationCache(backend, time.Hour)
	ctx := context.Background()

	if err := tc.Set(ctx, "New drug trial results", "de", "Neue Ergebnisse der Medikamentenstudie"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := tc.Get(ctx, "New drug trial results", "de")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "Neue Ergebnisse der Medikamentenstudie" {
		t.Errorf("got %q", got)
	}
}

func TestTranslationCache_MissOnAbsent(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()
	tc := NewTranslationCache(backend, time.Hour)

	if _, ok := tc.Get(context.Background(), "never stored", "fr"); ok {
		t.Error("expected cache miss")
	}
}

func TestTranslationCache_PairIdentityIsExact(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()
	tc := NewTranslationCache(backend, time.Hour)
	ctx := context.Background()

	_ = tc.Set(ctx, "Hello", "de", "Hallo")

	// Case, whitespace and language all participate in the identity.
	if _, ok := tc.Get(ctx, "hello", "de"); ok {
		t.Error("lookup must be case-sensitive")
	}
	if _, ok := tc.Get(ctx, "Hello ", "de"); ok {
		t.Error("lookup must be whitespace-sensitive")
	}
	if _, ok := tc.Get(ctx, "Hello", "fr"); ok {
		t.Error("lookup must be language-sensitive")
	}
}

func TestTranslationCache_Expiry(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = backend.Close() }()
	tc := NewTranslationCache(backend, 40*time.Millisecond)
	ctx := context.Background()

	_ = tc.Set(ctx, "Hello", "de", "Hallo")

	if _, ok := tc.Get(ctx, "Hello", "de"); !ok {
		t.Fatal("expected hit within TTL")
	}

	time.Sleep(60 * time.Millisecond)

	if _, ok := tc.Get(ctx, "Hello", "de"); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestTranslationCache_BatchModeNeverExpires(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: 10 * time.Millisecond})
	defer func() { _ = backend.Close() }()
	// TTL <= 0 selects the no-expiry batch mode.
	tc := NewTranslationCache(backend, 0)
	ctx := context.Background()

	_ = tc.Set(ctx, "Hello", "de", "Hallo")
	time.Sleep(30 * time.Millisecond)

	if _, ok := tc.Get(ctx, "Hello", "de"); !ok {
		t.Error("batch entries must not expire")
	}
}

func TestTranslationCache_OverwriteOnRefresh(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()
	tc := NewTranslationCache(backend, time.Hour)
	ctx := context.Background()

	_ = tc.Set(ctx, "Hello", "de", "Hallo")
	_ = tc.Set(ctx, "Hello", "de", "Servus")

	got, ok := tc.Get(ctx, "Hello", "de")
	if !ok || got != "Servus" {
		t.Errorf("got %q, %v; want Servus", got, ok)
	}
}

func TestTranslationKey_Distinct(t *testing.T) {
	a := TranslationKey("text", "de")
	b := TranslationKey("text", "fr")
	c := TranslationKey("other", "de")
	if a == b || a == c {
		t.Error("keys must differ per (text, language) pair")
	}
	if a != TranslationKey("text", "de") {
		t.Error("key must be deterministic")
	}
}
