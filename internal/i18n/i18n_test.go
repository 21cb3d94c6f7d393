// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"testing"
	"time"
)

var allLanguages = []string{"en", "de", "fr", "es", "it", "hr"}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(allLanguages, "en")
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}

func TestNewCatalog_AllLocalesLoad(t *testing.T) {
	c := testCatalog(t)
	for _, lang := range allLanguages {
		if !c.IsSupported(lang) {
			t.Errorf("language %s not supported", lang)
		}
		ui := c.UI(lang)
		for _, key := range []string{"page_title", "latest_research", "latest_treatments",
			"status_approved", "status_trial", "status_research", "archive_title", "no_archives"} {
			if ui[key] == "" {
				t.Errorf("language %s missing key %s", lang, key)
			}
		}
	}
}

func TestNewCatalog_UnknownLanguage(t *testing.T) {
	if _, err := NewCatalog([]string{"en", "xx"}, "en"); err == nil {
		t.Fatal("expected error for language without locale file")
	}
}

func TestNewCatalog_DefaultMustBeConfigured(t *testing.T) {
	if _, err := NewCatalog([]string{"de", "fr"}, "en"); err == nil {
		t.Fatal("expected error when default language is not configured")
	}
}

func TestCatalog_T(t *testing.T) {
	c := testCatalog(t)

	if got := c.T("de", "latest_research"); got != "Neueste Forschung" {
		t.Errorf("got %q", got)
	}
	// Unknown language falls back to the default table.
	if got := c.T("pt", "latest_research"); got != "Latest Research" {
		t.Errorf("got %q", got)
	}
	// Unknown key falls back to the key itself.
	if got := c.T("de", "missing_key"); got != "missing_key" {
		t.Errorf("got %q", got)
	}
}

func TestCatalog_Match(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		header string
		want   string
	}{
		{"de-DE,de;q=0.9,en;q=0.8", "de"},
		{"fr-CA", "fr"},
		{"hr", "hr"},
		{"pt-BR,pt;q=0.9", "en"},
		{"", "en"},
		{";;;", "en"},
	}
	for _, tt := range tests {
		if got := c.Match(tt.header); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("hr"); got != "Hrvatski" {
		t.Errorf("got %q", got)
	}
	if got := LanguageName("pt"); got != "PT" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		lang string
		want string
	}{
		{"en", "March 5, 2026"},
		{"de", "5. März 2026"},
		{"fr", "5 mars 2026"},
		{"es", "5 de marzo de 2026"},
		{"it", "5 marzo 2026"},
		{"hr", "5. ožujka 2026."},
		{"pt", "March 5, 2026"},
	}
	for _, tt := range tests {
		if got := FormatDate(d, tt.lang); got != tt.want {
			t.Errorf("FormatDate(%s) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestFormatMonthYear(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "January 2026"},
		{"es", "enero de 2026"},
		{"hr", "siječnja 2026."},
	}
	for _, tt := range tests {
		if got := FormatMonthYear(2026, time.January, tt.lang); got != tt.want {
			t.Errorf("FormatMonthYear(%s) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}
