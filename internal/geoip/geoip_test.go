// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"net"
	"testing"
)

func TestOpen_EmptyPathDisables(t *testing.T) {
	r, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") failed: %v", err)
	}
	if r != nil {
		t.Fatal("expected nil resolver for empty path")
	}
	if _, ok := r.Country(net.ParseIP("8.8.8.8")); ok {
		t.Error("nil resolver must report unknown")
	}
	if err := r.Close(); err != nil {
		t.Errorf("nil resolver Close failed: %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestCountry_SkipsPrivateAddresses(t *testing.T) {
	// A nil resolver exercises the address checks without a database.
	var r *Resolver
	for _, addr := range []string{"127.0.0.1", "10.0.0.1", "192.168.1.1", "0.0.0.0"} {
		if _, ok := r.Country(net.ParseIP(addr)); ok {
			t.Errorf("expected no country for %s", addr)
		}
	}
}
