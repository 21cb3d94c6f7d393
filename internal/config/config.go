// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	AppName    string `env:"DEMRES_APP_NAME" envDefault:"Dementia Research and Treatments Information"`
	ServerHost string `env:"DEMRES_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"DEMRES_SERVER_PORT" envDefault:"8000"`
	Env        string `env:"DEMRES_ENV" envDefault:"development"`
	LogLevel   string `env:"DEMRES_LOG_LEVEL" envDefault:"info"`
	DBPath     string `env:"DEMRES_DB_PATH" envDefault:"./data/demres.db"`

	// Cache configuration
	RedisURL      string `env:"DEMRES_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix   string `env:"DEMRES_CACHE_PREFIX" envDefault:"demres:"` // Redis key prefix
	CacheTTL      int    `env:"DEMRES_CACHE_TTL" envDefault:"3600"`     // On-demand cache TTL in seconds
	BatchCacheTTL int    `env:"DEMRES_BATCH_CACHE_TTL" envDefault:"0"`  // Batch cache TTL in seconds; 0 = keep until next run
	CacheMaxSize  int    `env:"DEMRES_CACHE_MAX_SIZE" envDefault:"10000"`

	// Languages
	SupportedLanguages string `env:"DEMRES_SUPPORTED_LANGUAGES" envDefault:"en,de,fr,es,it,hr"`
	DefaultLanguage    string `env:"DEMRES_DEFAULT_LANGUAGE" envDefault:"en"`

	// Generated pages
	OutputDir string `env:"DEMRES_OUTPUT_DIR" envDefault:"./static/languages"`

	// Content source: "static", "yaml" or "pubmed"
	ContentSource string `env:"DEMRES_CONTENT_SOURCE" envDefault:"static"`
	ContentFile   string `env:"DEMRES_CONTENT_FILE"` // Path to YAML content file (yaml source only)

	// Translation provider: "google" or "openai"
	TranslateProvider  string  `env:"DEMRES_TRANSLATE_PROVIDER" envDefault:"google"`
	OpenAIAPIKey       string  `env:"DEMRES_OPENAI_API_KEY"`
	OpenAIModel        string  `env:"DEMRES_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	TranslateRateLimit float64 `env:"DEMRES_TRANSLATE_RATE_LIMIT" envDefault:"3"` // Provider calls per second

	// GeoIP configuration
	GeoIPDBPath string `env:"DEMRES_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Optional in-process cron schedule for the monthly update (empty = disabled).
	// The canonical trigger is an external cron running cmd/monthly-update.
	UpdateSchedule string `env:"DEMRES_UPDATE_SCHEDULE"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Languages returns the ordered list of supported language codes.
func (c Config) Languages() []string {
	parts := strings.Split(c.SupportedLanguages, ",")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			langs = append(langs, p)
		}
	}
	return langs
}

// TTL returns the on-demand cache TTL as a duration.
func (c Config) TTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// BatchTTL returns the batch cache TTL as a duration.
// Zero means entries never expire until the next regeneration overwrites them.
func (c Config) BatchTTL() time.Duration {
	return time.Duration(c.BatchCacheTTL) * time.Second
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	langs := cfg.Languages()
	if len(langs) == 0 {
		return nil, fmt.Errorf("DEMRES_SUPPORTED_LANGUAGES must contain at least one language code")
	}
	for _, l := range langs {
		if _, err := language.Parse(l); err != nil {
			return nil, fmt.Errorf("DEMRES_SUPPORTED_LANGUAGES contains invalid language code %q: %w", l, err)
		}
	}

	cfg.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.DefaultLanguage))
	found := false
	for _, l := range langs {
		if l == cfg.DefaultLanguage {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("DEMRES_DEFAULT_LANGUAGE %q is not in DEMRES_SUPPORTED_LANGUAGES", cfg.DefaultLanguage)
	}

	switch cfg.TranslateProvider {
	case "google":
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("DEMRES_OPENAI_API_KEY is required when DEMRES_TRANSLATE_PROVIDER=openai")
		}
	default:
		return nil, fmt.Errorf("unknown DEMRES_TRANSLATE_PROVIDER %q (must be google or openai)", cfg.TranslateProvider)
	}

	switch cfg.ContentSource {
	case "static", "pubmed":
	case "yaml":
		if cfg.ContentFile == "" {
			return nil, fmt.Errorf("DEMRES_CONTENT_FILE is required when DEMRES_CONTENT_SOURCE=yaml")
		}
	default:
		return nil, fmt.Errorf("unknown DEMRES_CONTENT_SOURCE %q (must be static, yaml or pubmed)", cfg.ContentSource)
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("DEMRES_CACHE_TTL must be positive, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}
