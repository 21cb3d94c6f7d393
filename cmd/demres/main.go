// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// demres serves the multilingual dementia research site: the generated
// static pages, the JSON API and the on-demand translation endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/demres/demres-go/internal/cache"
	"github.com/demres/demres-go/internal/config"
	"github.com/demres/demres-go/internal/content"
	"github.com/demres/demres-go/internal/generator"
	"github.com/demres/demres-go/internal/geoip"
	"github.com/demres/demres-go/internal/handler"
	"github.com/demres/demres-go/internal/i18n"
	"github.com/demres/demres-go/internal/logging"
	"github.com/demres/demres-go/internal/middleware"
	"github.com/demres/demres-go/internal/scheduler"
	"github.com/demres/demres-go/internal/store"
	"github.com/demres/demres-go/internal/translate"
	"github.com/demres/demres-go/internal/version"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	apiRateLimit      = 10 // requests per second per IP
	apiRateBurst      = 20
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.BoolVar(showVersion, "v", false, "print version and exit (shorthand)")
	flag.Parse()

	if *showVersion {
		fmt.Println("demres " + version.Get().String())
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env file for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, nil)

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

	// From here on warnings and errors also land in the event log.
	logger = newLogger(cfg, queries)
	slog.SetDefault(logger)

	logger.Info("starting",
		"app", cfg.AppName,
		"version", version.Get().Version,
		"env", cfg.Env,
		"addr", cfg.ServerAddr())

	// The translation cache is shared with the batch updater: SQLite by
	// default, Redis when configured.
	backend := "sqlite"
	if cfg.UseRedisCache() {
		backend = "redis"
	}
	translationBackend, err := cache.New(cache.Config{
		Backend:    backend,
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		Queries:    queries,
		DefaultTTL: cfg.TTL(),
	})
	if err != nil {
		return fmt.Errorf("create translation cache: %w", err)
	}
	defer func() { _ = translationBackend.Close() }()

	contentCache := cache.NewMemoryCache(cache.MemoryCacheOptions{
		DefaultTTL: cfg.TTL(),
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() { _ = contentCache.Close() }()

	catalog, err := i18n.NewCatalog(cfg.Languages(), cfg.DefaultLanguage)
	if err != nil {
		return err
	}

	provider := newContentProvider(cfg, logger)
	translator := translate.NewService(
		cache.NewTranslationCache(translationBackend, cfg.TTL()),
		newTranslateProvider(cfg), cfg.DefaultLanguage, cfg.TranslateRateLimit, logger)

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		// The site works without country lookups.
		logger.Warn("geoip disabled", "error", err)
		geo = nil
	}
	defer func() { _ = geo.Close() }()

	api := handler.NewAPIHandler(provider, translator, catalog, contentCache, cfg.TTL(), logger)
	frontend := handler.NewFrontendHandler(catalog, geo)
	checks := map[string]handler.Pinger{"store": queries}
	if pinger, ok := translationBackend.(handler.Pinger); ok {
		checks["cache"] = pinger
	}
	health := handler.NewHealthHandler(version.Get().Version, checks)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimw.Recoverer)

	router.Method(http.MethodGet, "/health", health)
	router.Route("/api", func(r chi.Router) {
		r.Get("/news", api.News)
		r.Get("/treatments", api.Treatments)
		r.With(middleware.RateLimit(apiRateLimit, apiRateBurst)).Post("/translate", api.Translate)
	})
	router.Get("/", frontend.Root)
	router.Handle("/languages/*", http.StripPrefix("/languages/",
		http.FileServer(http.Dir(cfg.OutputDir))))

	// Optional in-process refresh schedule. Most deployments trigger
	// cmd/monthly-update from system cron instead.
	if cfg.UpdateSchedule != "" {
		gen, err := generator.New(provider, translator, catalog, cfg.OutputDir, logger)
		if err != nil {
			return err
		}
		sched := scheduler.New(logger)
		if err := sched.Add("site-refresh", cfg.UpdateSchedule, gen.Run); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		logger.Info("in-process refresh enabled", "schedule", cfg.UpdateSchedule)
	}

	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
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

	var inner slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDevelopment() {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}
	if queries == nil {
		return slog.New(inner)
	}
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
