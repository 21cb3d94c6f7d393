// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves client IPs to country codes for language
// selection on the site root.
package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// Resolver looks up the ISO country code for an IP address in a
// MaxMind GeoLite2 database. A nil Resolver is valid and reports
// every lookup as unknown, so callers need no enabled checks.
type Resolver struct {
	reader *maxminddb.Reader
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path disables geoip and
// returns a nil Resolver without error.
func Open(path string) (*Resolver, error) {
	if path == "" {
		return nil, nil
	}
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// Country returns the uppercase ISO 3166-1 country code for ip.
// Private, loopback and unresolvable addresses report false.
func (r *Resolver) Country(ip net.IP) (string, bool) {
	if r == nil || ip == nil {
		return "", false
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return "", false
	}
	var record countryRecord
	if err := r.reader.Lookup(ip, &record); err != nil {
		return "", false
	}
	if record.Country.ISOCode == "" {
		return "", false
	}
	return record.Country.ISOCode, true
}

// Close releases the database.
func (r *Resolver) Close() error {
	if r == nil {
		return nil
	}
	return r.reader.Close()
}
