// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package generator produces the static per-language site: one current
// page per language, archived monthly snapshots and an archive index.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/demres/demres-go/internal/content"
	"github.com/demres/demres-go/internal/i18n"
	"github.com/demres/demres-go/internal/translate"
)

const defaultConcurrency = 3

// Generator runs the monthly content refresh: fetch, translate per
// language, render pages and maintain the archive.
type Generator struct {
	content     content.Provider
	translator  *translate.Service
	catalog     *i18n.Catalog
	renderer    *Renderer
	outputDir   string
	logger      *slog.Logger
	concurrency int
	now         func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithConcurrency bounds how many records are translated at once per
// language. The default of 3 matches what the free translation endpoint
// tolerates.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// WithClock overrides the time source. Pages embed the generation date,
// so a fixed clock makes output reproducible.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator writing pages under outputDir.
func New(provider content.Provider, translator *translate.Service, catalog *i18n.Catalog,
	outputDir string, logger *slog.Logger, opts ...Option) (*Generator, error) {

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		content:     provider,
		translator:  translator,
		catalog:     catalog,
		renderer:    renderer,
		outputDir:   outputDir,
		logger:      logger,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Run executes one full site refresh. It fails only when no content is
// available at all; a single unreadable source or a failing language is
// logged and skipped so the remaining site still updates.
func (g *Generator) Run(ctx context.Context) error {
	start := g.now()

	articles, aErr := g.content.LatestResearch(ctx)
	treatments, tErr := g.content.LatestTreatments(ctx)
	if aErr != nil && tErr != nil {
		return fmt.Errorf("no content available: %w", errors.Join(aErr, tErr))
	}
	if aErr != nil {
		g.logger.Warn("research fetch failed, generating pages without articles", "error", aErr)
		articles = nil
	}
	if tErr != nil {
		g.logger.Warn("treatments fetch failed, generating pages without treatments", "error", tErr)
		treatments = nil
	}
	g.logger.Info("content fetched",
		"articles", len(articles), "treatments", len(treatments))

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	archiveMonth := g.now().Format("2006-01")
	var failed int
	for _, lang := range g.catalog.Languages() {
		if err := g.generateLanguage(ctx, lang, articles, treatments, archiveMonth); err != nil {
			failed++
			g.logger.Error("language generation failed", "lang", lang, "error", err)
		}
	}
	if failed == len(g.catalog.Languages()) {
		return fmt.Errorf("all %d languages failed", failed)
	}

	if err := g.writeRootRedirect(); err != nil {
		g.logger.Warn("failed to write root redirect", "error", err)
	}

	g.logger.Info("site refresh complete",
		"languages", len(g.catalog.Languages())-failed,
		"failed", failed,
		"duration", g.now().Sub(start).Round(time.Millisecond).String())
	return nil
}

// generateLanguage translates the content and writes the current page,
// this month's archive snapshot and the archive index for one language.
func (g *Generator) generateLanguage(ctx context.Context, lang string,
	articles []content.ResearchArticle, treatments []content.Treatment, archiveMonth string) error {

	langDir := filepath.Join(g.outputDir, lang)

	// An existing page means the language has published content worth
	// snapshotting alongside this refresh.
	_, err := os.Stat(filepath.Join(langDir, "index.html"))
	hadContent := err == nil

	translatedArticles := g.translateArticles(ctx, articles, lang)
	translatedTreatments := g.translateTreatments(ctx, treatments, lang)

	page := PageData{
		Lang:       lang,
		Articles:   translatedArticles,
		Treatments: translatedTreatments,
		Date:       g.now(),
	}

	if err := g.renderer.WriteLanguagePage(g.catalog, page, filepath.Join(langDir, "index.html")); err != nil {
		return fmt.Errorf("write language page: %w", err)
	}

	if hadContent {
		archiveDir := filepath.Join(langDir, "archive", archiveMonth)
		if err := g.renderer.WriteArchivedPage(g.catalog, page, archiveDir); err != nil {
			return fmt.Errorf("write archive snapshot: %w", err)
		}
	}

	if err := g.renderer.WriteArchiveIndex(g.catalog, lang, langDir, g.now().Year()); err != nil {
		return fmt.Errorf("write archive index: %w", err)
	}
	return nil
}

// translateArticles returns translated copies, leaving the originals
// untouched. A failed field keeps its source text.
func (g *Generator) translateArticles(ctx context.Context, articles []content.ResearchArticle, lang string) []content.ResearchArticle {
	out := make([]content.ResearchArticle, len(articles))
	copy(out, articles)
	if lang == g.catalog.Default() {
		return out
	}
	records := make([]content.Translatable, len(out))
	for i := range out {
		records[i] = &out[i]
	}
	g.translateRecords(ctx, records, lang)
	return out
}

// translateTreatments mirrors translateArticles for treatment records.
func (g *Generator) translateTreatments(ctx context.Context, treatments []content.Treatment, lang string) []content.Treatment {
	out := make([]content.Treatment, len(treatments))
	copy(out, treatments)
	if lang == g.catalog.Default() {
		return out
	}
	records := make([]content.Translatable, len(out))
	for i := range out {
		records[i] = &out[i]
	}
	g.translateRecords(ctx, records, lang)
	return out
}

// translateRecords rewrites the translatable fields of each record in
// place, translating at most g.concurrency records at a time.
func (g *Generator) translateRecords(ctx context.Context, records []content.Translatable, lang string) {
	sem := make(chan struct{}, g.concurrency)
	done := make(chan struct{})
	for _, record := range records {
		sem <- struct{}{}
		go func(rec content.Translatable) {
			defer func() {
				<-sem
				done <- struct{}{}
			}()
			for _, field := range rec.TranslatableFields() {
				translated, err := g.translator.Translate(ctx, *field, lang)
				if err != nil {
					// The service already returned the original text
					// and logged the failure.
					continue
				}
				*field = translated
			}
		}(record)
	}
	for range records {
		<-done
	}
}

// writeRootRedirect writes the fallback redirect page one level above
// the language directories for deployments without the Go frontend.
func (g *Generator) writeRootRedirect() error {
	target := "/languages/" + g.catalog.Default() + "/"
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta http-equiv="refresh" content="0; url=%s">
    <title>Redirecting...</title>
</head>
<body>
    <p>Redirecting...</p>
    <p>If you are not redirected, <a href="%s">click here</a>.</p>
</body>
</html>
`, target, target)
	path := filepath.Join(filepath.Dir(g.outputDir), "index_multilang.html")
	return os.WriteFile(path, []byte(html), 0o644)
}
