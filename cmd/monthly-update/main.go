// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// monthly-update regenerates the static multilingual site: it fetches
// the latest content, translates it into every configured language and
// rewrites the pages and archives. Meant to run from cron once a month.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/demres/demres-go/internal/cache"
	"github.com/demres/demres-go/internal/config"
	"github.com/demres/demres-go/internal/content"
	"github.com/demres/demres-go/internal/generator"
	"github.com/demres/demres-go/internal/i18n"
	"github.com/demres/demres-go/internal/logging"
	"github.com/demres/demres-go/internal/store"
	"github.com/demres/demres-go/internal/translate"
	"github.com/demres/demres-go/internal/version"
)

const runTimeout = 30 * time.Minute

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("monthly-update " + version.Get().String())
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := store.Migrate(db); err != nil {
		return err
	}
	queries := store.New(db)

	logger := newLogger(cfg, queries).With("run_id", uuid.NewString())

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// Same cache the server reads from, so pages and the translate API
	// stay warm after the refresh.
	backend := "sqlite"
	if cfg.UseRedisCache() {
		backend = "redis"
	}
	translationBackend, err := cache.New(cache.Config{
		Backend:    backend,
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		Queries:    queries,
		DefaultTTL: cfg.BatchTTL(),
	})
	if err != nil {
		return fmt.Errorf("create translation cache: %w", err)
	}
	defer func() { _ = translationBackend.Close() }()

	// Drop entries that expired since the last run before refilling.
	if sqlite, ok := translationBackend.(*cache.SQLiteCache); ok {
		if purged, err := sqlite.PurgeExpired(ctx); err != nil {
			logger.Warn("cache purge failed", "error", err)
		} else if purged > 0 {
			logger.Info("purged expired cache entries", "count", purged)
		}
	}

	catalog, err := i18n.NewCatalog(cfg.Languages(), cfg.DefaultLanguage)
	if err != nil {
		return err
	}

	translator := translate.NewService(
		cache.NewTranslationCache(translationBackend, cfg.BatchTTL()),
		newTranslateProvider(cfg), cfg.DefaultLanguage, cfg.TranslateRateLimit, logger)

	gen, err := generator.New(newContentProvider(cfg, logger), translator, catalog,
		cfg.OutputDir, logger)
	if err != nil {
		return err
	}

	logger.Info("monthly update starting",
		"version", version.Get().Version,
		"languages", cfg.SupportedLanguages,
		"source", cfg.ContentSource,
		"provider", translator.Provider(),
		"output", cfg.OutputDir)

	if err := gen.Run(ctx); err != nil {
		return err
	}

	if stats, ok := translator.Stats(); ok {
		logger.Info("translation cache stats",
			"hits", stats.Hits, "misses", stats.Misses, "entries", stats.Items)
	}
	return nil
}

func newLogger(cfg *config.Config, queries *store.Queries) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	inner := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(logging.NewEventLogHandler(inner, queries))
}

func newContentProvider(cfg *config.Config, logger *slog.Logger) content.Provider {
	switch cfg.ContentSource {
	case "yaml":
		return content.NewYAML(cfg.ContentFile)
	case "pubmed":
		return content.NewPubMed(logger)
	default:
		return content.NewStatic()
	}
}

func newTranslateProvider(cfg *config.Config) translate.Provider {
	if cfg.TranslateProvider == "openai" {
		return translate.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.DefaultLanguage)
	}
	return translate.NewGoogle(cfg.DefaultLanguage)
}
