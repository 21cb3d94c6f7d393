// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleProvider translates via the free Google Translate web endpoint.
// No API key is required; the endpoint rate-limits aggressively, so callers
// should go through the Service which paces requests.
type GoogleProvider struct {
	client     *http.Client
	endpoint   string
	sourceLang string
}

// NewGoogle creates a Google translation provider translating from sourceLang.
func NewGoogle(sourceLang string) *GoogleProvider {
	return &GoogleProvider{
		client:     &http.Client{Timeout: 30 * time.Second},
		endpoint:   googleEndpoint,
		sourceLang: sourceLang,
	}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// Translate implements Provider.
func (p *GoogleProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", p.sourceLang)
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("rate limited")}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}

	translated, err := parseGoogleResponse(body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	return translated, nil
}

// parseGoogleResponse extracts the translated text from the positional JSON
// array the gtx endpoint returns: [[["translated","original",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("malformed response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("malformed response: empty payload")
	}

	segments, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("malformed response: unexpected shape")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("malformed response: no translation segments")
	}
	return sb.String(), nil
}
