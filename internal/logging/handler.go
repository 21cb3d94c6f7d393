// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging mirrors warnings and errors into the persistent
// event log so operators can inspect them after the fact.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/demres/demres-go/internal/store"
)

// EventLogHandler wraps another slog.Handler and records every WARN or
// higher entry in the event_log table. Lower levels pass through
// untouched. Persistence failures are dropped silently to avoid
// recursive logging.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	attrs   []slog.Attr
}

// NewEventLogHandler wraps inner with event log persistence.
func NewEventLogHandler(inner slog.Handler, queries *store.Queries) *EventLogHandler {
	return &EventLogHandler{inner: inner, queries: queries}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn && h.queries != nil {
		h.persist(ctx, record)
	}
	return h.inner.Handle(ctx, record)
}

func (h *EventLogHandler) persist(ctx context.Context, record slog.Record) {
	meta := make(map[string]any, record.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		meta[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		meta[attr.Key] = attr.Value.Any()
		return true
	})

	metadata := "{}"
	if len(meta) > 0 {
		if data, err := json.Marshal(meta); err == nil {
			metadata = string(data)
		}
	}

	createdAt := record.Time
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_ = h.queries.CreateEvent(ctx, record.Level.String(), record.Message, metadata, createdAt)
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		attrs:   merged,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		attrs:   h.attrs,
	}
}
