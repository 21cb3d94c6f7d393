package cache

import (
	"fmt"
	"time"

	"github.com/demres/demres-go/internal/store"
)

// Config holds configuration for cache creation.
type Config struct {
	// Backend is the cache backend type: "memory", "redis" or "sqlite"
	Backend string

	// RedisURL is the Redis connection URL (redis backend only)
	RedisURL string

	// Prefix is the key prefix for Redis (redis backend only)
	Prefix string

	// Queries is the opened SQLite store (sqlite backend only)
	Queries *store.Queries

	// DefaultTTL is the default TTL for cache entries
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory backend (0 = unlimited)
	MaxSize int

	// CleanupInterval is the interval for expired entry cleanup (memory backend)
	CleanupInterval time.Duration
}

// New creates a cache based on the provided configuration.
func New(cfg Config) (Cacher, error) {
	switch cfg.Backend {
	case "redis":
		return NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
	case "sqlite":
		if cfg.Queries == nil {
			return nil, fmt.Errorf("sqlite cache backend requires an opened store")
		}
		return NewSQLiteCache(cfg.Queries, cfg.DefaultTTL), nil
	case "memory", "":
		return NewMemoryCache(MemoryCacheOptions{
			DefaultTTL:      cfg.DefaultTTL,
			MaxSize:         cfg.MaxSize,
			CleanupInterval: cfg.CleanupInterval,
		}), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
