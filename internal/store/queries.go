// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a cache entry does not exist or has expired.
var ErrNotFound = errors.New("store: entry not found")

// Queries wraps a database handle with typed accessors.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance for the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// GetCacheEntry returns the value for key if present and not expired.
// Expired entries are treated as absent but left in place for PurgeExpired.
func (q *Queries) GetCacheEntry(ctx context.Context, key string, now time.Time) ([]byte, error) {
	var value []byte
	var expiresAt sql.NullInt64
	err := q.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid && now.Unix() >= expiresAt.Int64 {
		return nil, ErrNotFound
	}
	return value, nil
}

// SetCacheEntry inserts or overwrites a cache entry.
// A nil expiresAt means the entry never expires.
func (q *Queries) SetCacheEntry(ctx context.Context, key string, value []byte, expiresAt *time.Time) error {
	var exp sql.NullInt64
	if expiresAt != nil {
		exp = sql.NullInt64{Int64: expiresAt.Unix(), Valid: true}
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, exp)
	return err
}

// DeleteCacheEntry removes a cache entry.
func (q *Queries) DeleteCacheEntry(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
	return err
}

// ClearCacheEntries removes all cache entries.
func (q *Queries) ClearCacheEntries(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM cache_entries`)
	return err
}

// CountCacheEntries returns the number of stored entries, including expired ones.
func (q *Queries) CountCacheEntries(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_entries`).Scan(&n)
	return n, err
}

// PurgeExpired removes entries whose expiry has passed.
func (q *Queries) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CreateEvent appends a record to the event log.
func (q *Queries) CreateEvent(ctx context.Context, level, message, metadata string, createdAt time.Time) error {
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO event_log (level, message, metadata, created_at) VALUES (?, ?, ?, ?)`,
		level, message, metadata, createdAt.UTC())
	return err
}

// CountEvents returns the number of event log records at the given level.
func (q *Queries) CountEvents(ctx context.Context, level string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_log WHERE level = ?`, level).Scan(&n)
	return n, err
}

// Ping verifies the database connection.
func (q *Queries) Ping(ctx context.Context) error {
	return q.db.PingContext(ctx)
}
