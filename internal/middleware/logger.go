// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware shared by the API and
// frontend routes.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mileusna/useragent"
)

// RequestLogger logs one line per request with status, duration and a
// parsed user agent. Client errors log at INFO, server errors at ERROR
// so they reach the event log.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				ua := useragent.Parse(r.UserAgent())
				attrs := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start).Round(time.Microsecond).String(),
					"remote", r.RemoteAddr,
					"browser", ua.Name,
					"os", ua.OS,
				}
				if ww.Status() >= http.StatusInternalServerError {
					logger.Error("request failed", attrs...)
				} else {
					logger.Info("request", attrs...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
