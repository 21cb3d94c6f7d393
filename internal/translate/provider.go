// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate wraps external translation providers behind a caching
// service with silent fallback to the source text.
package translate

import (
	"context"
	"fmt"
)

// Provider translates a single text into a target language.
// Implementations are stateless per call and carry no retry policy;
// the caller decides what to do on failure.
type Provider interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
	Name() string
}

// ProviderError reports a failed provider call: unreachable service,
// rate limiting, or a malformed response. It is never surfaced to end
// users; callers fall back to the untranslated text.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("translation provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
