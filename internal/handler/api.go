// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/demres/demres-go/internal/cache"
	"github.com/demres/demres-go/internal/content"
	"github.com/demres/demres-go/internal/i18n"
	"github.com/demres/demres-go/internal/translate"
)

const maxTranslateTextLen = 10000

// Cache keys for the content list endpoints.
const (
	newsCacheKey       = "news_articles"
	treatmentsCacheKey = "treatments"
)

// APIHandler serves the JSON API: content lists and on-demand
// translation.
type APIHandler struct {
	provider       content.Provider
	translator     *translate.Service
	catalog        *i18n.Catalog
	articleCache   *cache.TypedCache[[]content.ResearchArticle]
	treatmentCache *cache.TypedCache[[]content.Treatment]
	logger         *slog.Logger
}

// NewAPIHandler creates the API handler. contentCache backs the list
// endpoint caches with the given TTL.
func NewAPIHandler(provider content.Provider, translator *translate.Service,
	catalog *i18n.Catalog, contentCache cache.Cacher, contentTTL time.Duration,
	logger *slog.Logger) *APIHandler {

	return &APIHandler{
		provider:       provider,
		translator:     translator,
		catalog:        catalog,
		articleCache:   cache.NewTypedCache[[]content.ResearchArticle](contentCache, contentTTL),
		treatmentCache: cache.NewTypedCache[[]content.Treatment](contentCache, contentTTL),
		logger:         logger,
	}
}

// News serves GET /api/news.
func (h *APIHandler) News(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleCache.GetOrSet(r.Context(), newsCacheKey, func() (*[]content.ResearchArticle, error) {
		list, err := h.provider.LatestResearch(r.Context())
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		h.logger.Error("failed to fetch research articles", "error", err)
		WriteError(w, http.StatusBadGateway, "content_unavailable", "research articles are temporarily unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, *articles)
}

// Treatments serves GET /api/treatments.
func (h *APIHandler) Treatments(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.treatmentCache.GetOrSet(r.Context(), treatmentsCacheKey, func() (*[]content.Treatment, error) {
		list, err := h.provider.LatestTreatments(r.Context())
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		h.logger.Error("failed to fetch treatments", "error", err)
		WriteError(w, http.StatusBadGateway, "content_unavailable", "treatments are temporarily unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, *treatments)
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// Translate serves POST /api/translate. A provider failure is not an
// API error: the response carries the original text unchanged.
func (h *APIHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		WriteError(w, http.StatusBadRequest, "invalid_request", "text is required")
		return
	}
	if len(req.Text) > maxTranslateTextLen {
		WriteError(w, http.StatusBadRequest, "invalid_request", "text exceeds maximum length")
		return
	}

	lang := strings.ToLower(strings.TrimSpace(req.TargetLanguage))
	if !h.catalog.IsSupported(lang) {
		WriteError(w, http.StatusBadRequest, "unsupported_language", "target_language is not supported")
		return
	}

	translated, err := h.translator.Translate(r.Context(), req.Text, lang)
	if err != nil {
		// Logged by the service; the client gets the original text back.
		translated = req.Text
	}
	WriteJSON(w, http.StatusOK, translateResponse{
		OriginalText:   req.Text,
		TranslatedText: translated,
		SourceLanguage: h.catalog.Default(),
		TargetLanguage: lang,
	})
}
