// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocelview/internal/config"
	"github.com/olegiv/ocelview/internal/plugin"
	"github.com/olegiv/ocelview/internal/render"
	"github.com/olegiv/ocelview/internal/version"
	"github.com/olegiv/ocelview/plugins"
	"github.com/olegiv/ocelview/web"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:      "localhost",
		ServerPort:      8080,
		Env:             config.EnvProduction,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		APIBaseURL:      "https://ocel.example.org/api",
		APIRateLimit:    10,
		APIRateBurst:    20,
	}
}

func testRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	index := plugins.MustIndex()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, Index: index, Version: "test"})
	require.NoError(t, err)

	return newRouter(routerDeps{
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		index:    index,
		renderer: renderer,
		version:  version.Info{Version: "test"},
	})
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterPages(t *testing.T) {
	r := testRouter(t, testConfig())

	tests := []struct {
		target string
		status int
		body   string
	}{
		{"/", http.StatusOK, `href="/plugin/ocelot"`},
		{"/plugin/berti", http.StatusOK, "<h1>Berti Discovery</h1>"},
		{"/plugin/berti/ocdfg", http.StatusOK, `data-endpoint="https://ocel.example.org/api/discovery/ocdfg"`},
		{"/plugin/ocelot/events", http.StatusOK, `<table data-endpoint=`},
		{"/plugin/ocelot/eventOverview", http.StatusOK, "<h1>Event Overview</h1>"},
		{"/plugin/ocelot/nonexistent", http.StatusNotFound, "<h1>Not found</h1>"},
		{"/plugin/nosuchplugin", http.StatusNotFound, "<h1>Not found</h1>"},
		{"/plugin/ocelot/events?page=x", http.StatusBadRequest, "invalid page number"},
		{"/nowhere", http.StatusNotFound, "<h1>Not found</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(r, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestRouterMiddleware(t *testing.T) {
	r := testRouter(t, testConfig())

	rec := serve(r, http.MethodGet, "/plugin/ocelot")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "connect-src 'self' https://ocel.example.org")
	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "includeSubDomains")

	rec = serve(r, http.MethodGet, "/plugin/ocelot/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/plugin/ocelot", rec.Header().Get("Location"))

	rec = serve(r, http.MethodHead, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterAPI(t *testing.T) {
	r := testRouter(t, testConfig())

	rec := serve(r, http.MethodGet, "/api/plugins")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries map[string]plugin.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Contains(t, entries, "berti")
	assert.Contains(t, entries, "ocelot")

	rec = serve(r, http.MethodGet, "/api/plugins/nosuchplugin")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRouterAPIRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.APIRateLimit = 0.001
	cfg.APIRateBurst = 1
	r := testRouter(t, cfg)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/plugins").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/api/plugins").Code)

	// pages are not rate limited
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/").Code)
}

func TestRouterAPIRateLimitForwardingHeaders(t *testing.T) {
	spoofed := func(r http.Handler, i int) int {
		req := httptest.NewRequest(http.MethodGet, "/api/plugins", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	cfg := testConfig()
	cfg.APIRateLimit = 0.001
	cfg.APIRateBurst = 1

	// rotating headers do not reset the limit of a direct client
	r := testRouter(t, cfg)
	assert.Equal(t, http.StatusOK, spoofed(r, 1))
	assert.Equal(t, http.StatusTooManyRequests, spoofed(r, 2))

	// behind a trusted proxy every forwarded client has its own bucket
	cfg.TrustProxy = true
	r = testRouter(t, cfg)
	assert.Equal(t, http.StatusOK, spoofed(r, 1))
	assert.Equal(t, http.StatusOK, spoofed(r, 2))
	assert.Equal(t, http.StatusTooManyRequests, spoofed(r, 2))
}

func TestRouterHealth(t *testing.T) {
	rec := serve(testRouter(t, testConfig()), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, len(plugins.Names()), body["plugins"])
}

func TestAPIOrigin(t *testing.T) {
	assert.Equal(t, "https://ocel.example.org", apiOrigin("https://ocel.example.org/api"))
	assert.Equal(t, "http://localhost:8000", apiOrigin("http://localhost:8000"))
	assert.Equal(t, "", apiOrigin("not a url"))
	assert.Equal(t, "", apiOrigin(""))
}
