// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 8000 {
		t.Errorf("ServerPort = %d, want 8000", cfg.ServerPort)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want en", cfg.DefaultLanguage)
	}
	if cfg.TTL() != time.Hour {
		t.Errorf("TTL = %v, want 1h", cfg.TTL())
	}
	if cfg.BatchTTL() != 0 {
		t.Errorf("BatchTTL = %v, want 0", cfg.BatchTTL())
	}

	langs := cfg.Languages()
	want := []string{"en", "de", "fr", "es", "it", "hr"}
	if len(langs) != len(want) {
		t.Fatalf("Languages = %v, want %v", langs, want)
	}
	for i := range want {
		if langs[i] != want[i] {
			t.Errorf("Languages[%d] = %q, want %q", i, langs[i], want[i])
		}
	}
}

func TestLoadInvalidLanguage(t *testing.T) {
	t.Setenv("DEMRES_SUPPORTED_LANGUAGES", "en,not-a-lang-code!")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid language code")
	}
}

func TestLoadDefaultLanguageMustBeSupported(t *testing.T) {
	t.Setenv("DEMRES_SUPPORTED_LANGUAGES", "de,fr")
	t.Setenv("DEMRES_DEFAULT_LANGUAGE", "en")

	if _, err := Load(); err == nil {
		t.Error("expected error when default language is not supported")
	}
}

func TestLoadOpenAIRequiresKey(t *testing.T) {
	t.Setenv("DEMRES_TRANSLATE_PROVIDER", "openai")

	if _, err := Load(); err == nil {
		t.Error("expected error when openai provider has no API key")
	}
}

func TestLoadYAMLRequiresFile(t *testing.T) {
	t.Setenv("DEMRES_CONTENT_SOURCE", "yaml")

	if _, err := Load(); err == nil {
		t.Error("expected error when yaml source has no content file")
	}
}

func TestLanguagesNormalization(t *testing.T) {
	t.Setenv("DEMRES_SUPPORTED_LANGUAGES", " EN , de ,fr,")
	t.Setenv("DEMRES_DEFAULT_LANGUAGE", "EN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	langs := cfg.Languages()
	if len(langs) != 3 || langs[0] != "en" || langs[1] != "de" || langs[2] != "fr" {
		t.Errorf("Languages = %v, want [en de fr]", langs)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want en", cfg.DefaultLanguage)
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 9000}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr = %q, want 0.0.0.0:9000", got)
	}
}
