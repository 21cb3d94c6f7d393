// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/demres/demres-go/internal/geoip"
	"github.com/demres/demres-go/internal/i18n"
)

// Countries mapped to a site language. Multilingual countries get their
// majority language; everything else falls through to Accept-Language.
var countryLanguages = map[string]string{
	"DE": "de", "AT": "de", "CH": "de",
	"FR": "fr",
	"ES": "es",
	"IT": "it",
	"HR": "hr",
	"GB": "en", "US": "en", "IE": "en",
}

// FrontendHandler redirects the site root to the best language page.
type FrontendHandler struct {
	catalog *i18n.Catalog
	geo     *geoip.Resolver
}

// NewFrontendHandler creates the root redirect handler. geo may be nil.
func NewFrontendHandler(catalog *i18n.Catalog, geo *geoip.Resolver) *FrontendHandler {
	return &FrontendHandler{catalog: catalog, geo: geo}
}

// Root serves GET /. Language choice order: explicit ?lang parameter,
// GeoIP country, Accept-Language, configured default.
func (h *FrontendHandler) Root(w http.ResponseWriter, r *http.Request) {
	lang := h.pickLanguage(r)
	http.Redirect(w, r, "/languages/"+lang+"/", http.StatusFound)
}

func (h *FrontendHandler) pickLanguage(r *http.Request) string {
	if lang := strings.ToLower(r.URL.Query().Get("lang")); lang != "" && h.catalog.IsSupported(lang) {
		return lang
	}

	if country, ok := h.geo.Country(clientIP(r)); ok {
		if lang, ok := countryLanguages[country]; ok && h.catalog.IsSupported(lang) {
			return lang
		}
	}

	return h.catalog.Match(r.Header.Get("Accept-Language"))
}

func clientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
