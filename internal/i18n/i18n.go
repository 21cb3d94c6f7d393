// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the UI string catalog and language negotiation
// for the generated pages and the HTTP frontend.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Native language names for the language selector.
var languageNames = map[string]string{
	"en": "English",
	"de": "Deutsch",
	"fr": "Français",
	"es": "Español",
	"it": "Italiano",
	"hr": "Hrvatski",
}

// Catalog holds the UI strings for all configured languages and
// negotiates a language from Accept-Language headers.
type Catalog struct {
	languages   []string
	defaultLang string
	tables      map[string]map[string]string
	matcher     language.Matcher
	tags        []language.Tag
}

// NewCatalog loads the embedded locale files for the given languages.
// defaultLang must be among languages and becomes the fallback for
// negotiation and for missing strings.
func NewCatalog(languages []string, defaultLang string) (*Catalog, error) {
	c := &Catalog{
		languages:   languages,
		defaultLang: defaultLang,
		tables:      make(map[string]map[string]string, len(languages)),
	}

	found := false
	for _, lang := range languages {
		data, err := localeFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			return nil, fmt.Errorf("no locale file for language %q: %w", lang, err)
		}
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", lang, err)
		}
		c.tables[lang] = table

		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language code %q: %w", lang, err)
		}
		// The default language must be the matcher's first tag.
		if lang == defaultLang {
			c.tags = append([]language.Tag{tag}, c.tags...)
			found = true
		} else {
			c.tags = append(c.tags, tag)
		}
	}
	if !found {
		return nil, fmt.Errorf("default language %q not in configured languages", defaultLang)
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Languages returns the configured language codes.
func (c *Catalog) Languages() []string { return c.languages }

// Default returns the fallback language code.
func (c *Catalog) Default() string { return c.defaultLang }

// IsSupported reports whether lang is a configured language code.
func (c *Catalog) IsSupported(lang string) bool {
	_, ok := c.tables[lang]
	return ok
}

// UI returns the complete string table for lang. Strings missing from a
// locale fall back to the default language so templates never render
// empty labels.
func (c *Catalog) UI(lang string) map[string]string {
	table, ok := c.tables[lang]
	if !ok {
		return c.tables[c.defaultLang]
	}
	fallback := c.tables[c.defaultLang]
	if len(table) >= len(fallback) {
		return table
	}
	merged := make(map[string]string, len(fallback))
	for k, v := range fallback {
		merged[k] = v
	}
	for k, v := range table {
		merged[k] = v
	}
	return merged
}

// T returns a single UI string, falling back to the default language
// and finally to the key itself.
func (c *Catalog) T(lang, key string) string {
	if table, ok := c.tables[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := c.tables[c.defaultLang][key]; ok {
		return s
	}
	return key
}

// Match negotiates the best supported language for an Accept-Language
// header value. An empty or unparseable header yields the default.
func (c *Catalog) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return c.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.defaultLang
	}
	base, _ := c.tags[idx].Base()
	lang := base.String()
	if !c.IsSupported(lang) {
		return c.defaultLang
	}
	return lang
}

// LanguageName returns the native display name for a language code,
// or the uppercased code when unknown.
func LanguageName(lang string) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return strings.ToUpper(lang)
}
