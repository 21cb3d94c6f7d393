// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/demres/demres-go/internal/cache"
)

// Service is the cached translation front door. Every lookup goes through
// the cache first; only misses reach the provider, paced by the rate
// limiter. A provider failure returns the original text alongside the
// error so callers can degrade gracefully.
type Service struct {
	cache    *cache.TranslationCache
	provider Provider
	baseline string
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewService creates a translation service. requestsPerSecond bounds
// provider calls; zero or negative disables pacing.
func NewService(tc *cache.TranslationCache, provider Provider, baselineLang string,
	requestsPerSecond float64, logger *slog.Logger) *Service {

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Service{
		cache:    tc,
		provider: provider,
		baseline: baselineLang,
		limiter:  limiter,
		logger:   logger,
	}
}

// Provider returns the name of the underlying translation provider.
func (s *Service) Provider() string { return s.provider.Name() }

// Translate returns text translated into targetLang. Empty or
// whitespace-only text and the baseline language short-circuit without
// touching cache or provider. On provider failure the original text is
// returned together with the error; the caller decides whether that is
// fatal.
func (s *Service) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if targetLang == s.baseline {
		return text, nil
	}

	if translated, ok := s.cache.Get(ctx, text, targetLang); ok {
		return translated, nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return text, err
		}
	}

	translated, err := s.provider.Translate(ctx, text, targetLang)
	if err != nil {
		s.logger.Warn("translation failed, keeping original text",
			"provider", s.provider.Name(),
			"target_lang", targetLang,
			"text_len", len(text),
			"error", err)
		return text, err
	}

	if err := s.cache.Set(ctx, text, targetLang, translated); err != nil {
		s.logger.Warn("failed to cache translation",
			"target_lang", targetLang, "error", err)
	}
	return translated, nil
}

// Stats exposes the underlying cache statistics when the backend
// supports them.
func (s *Service) Stats() (cache.Stats, bool) {
	return s.cache.Stats()
}
