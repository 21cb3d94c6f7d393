// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/demres/demres-go/internal/i18n"
)

func testFrontend(t *testing.T) *FrontendHandler {
	t.Helper()
	catalog, err := i18n.NewCatalog([]string{"en", "de", "fr", "es", "it", "hr"}, "en")
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return NewFrontendHandler(catalog, nil)
}

func TestFrontend_Root(t *testing.T) {
	h := testFrontend(t)

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"lang param wins", "/?lang=hr", "de-DE", "/languages/hr/"},
		{"lang param is case-insensitive", "/?lang=DE", "fr-FR", "/languages/de/"},
		{"invalid lang param ignored", "/?lang=pt", "de-DE", "/languages/de/"},
		{"accept-language", "/", "fr-FR,fr;q=0.9", "/languages/fr/"},
		{"unsupported accept-language", "/", "ja-JP", "/languages/en/"},
		{"no signal", "/", "", "/languages/en/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.Root(rec, req)

			if rec.Code != http.StatusFound {
				t.Fatalf("got status %d, want 302", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.want {
				t.Errorf("got redirect %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler("1.2.3", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"status":"healthy"`, `"version":"1.2.3"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
}
