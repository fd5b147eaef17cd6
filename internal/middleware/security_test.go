// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{name: "production mode enables HSTS", isDev: false, wantHSTS: true},
		{name: "development mode disables HSTS", isDev: true, wantHSTS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSecurityHeadersConfig(tt.isDev, "https://ocel.example.com")
			handler := SecurityHeaders(cfg)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS && hsts != "max-age=31536000; includeSubDomains" {
				t.Errorf("HSTS = %q", hsts)
			}
			if !tt.wantHSTS && hsts != "" {
				t.Errorf("expected no HSTS header but got: %s", hsts)
			}

			csp := rec.Header().Get("Content-Security-Policy")
			if !strings.HasPrefix(csp, "default-src 'self'; script-src") {
				t.Errorf("CSP = %q, want default-src first", csp)
			}
			if !strings.Contains(csp, "connect-src 'self' https://ocel.example.com") {
				t.Errorf("CSP = %q, want API origin in connect-src", csp)
			}
			if got := strings.Contains(csp, "'unsafe-eval'"); got != tt.isDev {
				t.Errorf("unsafe-eval present = %v, want %v", got, tt.isDev)
			}

			if frame := rec.Header().Get("X-Frame-Options"); frame != "SAMEORIGIN" {
				t.Errorf("expected X-Frame-Options: SAMEORIGIN, got: %s", frame)
			}
			if nosniff := rec.Header().Get("X-Content-Type-Options"); nosniff != "nosniff" {
				t.Errorf("expected X-Content-Type-Options: nosniff, got: %s", nosniff)
			}
			if pp := rec.Header().Get("Permissions-Policy"); !strings.HasPrefix(pp, "browsing-topics=()") {
				t.Errorf("Permissions-Policy = %q, want sorted directives", pp)
			}
		})
	}
}

func TestSecurityHeaders_ExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false, "")
	cfg.ExcludePaths = []string{"/api/"}
	handler := SecurityHeaders(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/plugins", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if csp := rec.Header().Get("Content-Security-Policy"); csp != "" {
		t.Errorf("excluded path got CSP %q", csp)
	}
}

func TestBuildCSP_UnknownDirectivesSorted(t *testing.T) {
	got := buildCSP(map[string]string{
		"worker-src":  "'self'",
		"default-src": "'none'",
		"media-src":   "'self'",
	})
	want := "default-src 'none'; media-src 'self'; worker-src 'self'"
	if got != want {
		t.Errorf("buildCSP() = %q, want %q", got, want)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		target       string
		wantStatus   int
		wantLocation string
		wantPath     string
	}{
		{"root untouched", http.MethodGet, "/", http.StatusOK, "", "/"},
		{"no slash untouched", http.MethodGet, "/plugin/ocelot", http.StatusOK, "", "/plugin/ocelot"},
		{"redirect plugin", http.MethodGet, "/plugin/ocelot/", http.StatusMovedPermanently, "/plugin/ocelot", ""},
		{"redirect keeps query", http.MethodGet, "/plugin/berti/ocdfg/?log=1", http.StatusMovedPermanently, "/plugin/berti/ocdfg?log=1", ""},
		{"no open redirect", http.MethodGet, "//evil.example/", http.StatusMovedPermanently, "/evil.example", ""},
		{"post rewritten", http.MethodPost, "/api/plugins/", http.StatusOK, "", "/api/plugins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			handler := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
			}))

			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
			if gotPath != tt.wantPath {
				t.Errorf("next saw path %q, want %q", gotPath, tt.wantPath)
			}
		})
	}
}
