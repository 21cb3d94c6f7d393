// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// translationEntry is the stored form of a cached translation.
type translationEntry struct {
	TranslatedText string    `json:"translated_text"`
	CreatedAt      time.Time `json:"created_at"`
}

// TranslationCache maps (sourceText, targetLanguage) pairs to translated text
// on top of any Cacher backend. The pair is the identity: lookups are case-
// and whitespace-sensitive in the source text.
type TranslationCache struct {
	cache Cacher
	ttl   time.Duration
}

// NewTranslationCache creates a translation cache with the given TTL.
// A TTL of zero or less stores entries without expiry; they remain valid
// until the next regeneration overwrites them.
func NewTranslationCache(c Cacher, ttl time.Duration) *TranslationCache {
	if ttl <= 0 {
		ttl = NoExpiry
	}
	return &TranslationCache{cache: c, ttl: ttl}
}

// TranslationKey builds the cache key for a (sourceText, targetLanguage) pair.
// The source text is hashed so keys stay bounded and safe for any backend
// while preserving exact-pair identity.
func TranslationKey(text, lang string) string {
	sum := sha256.Sum256([]byte(text))
	return "tr:" + lang + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached translation for the pair, if present and fresh.
func (c *TranslationCache) Get(ctx context.Context, text, lang string) (string, bool) {
	data, err := c.cache.Get(ctx, TranslationKey(text, lang))
	if err != nil {
		return "", false
	}

	var entry translationEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}
	return entry.TranslatedText, true
}

// Set stores a translation for the pair, overwriting any previous entry.
func (c *TranslationCache) Set(ctx context.Context, text, lang, translated string) error {
	entry := translationEntry{
		TranslatedText: translated,
		CreatedAt:      time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, TranslationKey(text, lang), data, c.ttl)
}

// Stats returns backend statistics when the backend tracks them.
func (c *TranslationCache) Stats() (Stats, bool) {
	if sp, ok := c.cache.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return Stats{}, false
}
