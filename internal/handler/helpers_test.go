// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocelview/internal/plugin"
	"github.com/olegiv/ocelview/internal/render"
	"github.com/olegiv/ocelview/internal/version"
	"github.com/olegiv/ocelview/web"
)

const testAPIBaseURL = "http://ocel.test:8000"

// contextEcho writes the resolution and API URL it receives.
var contextEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	res, ok := plugin.FromContext(r.Context())
	if !ok {
		http.Error(w, "no resolution", http.StatusInternalServerError)
		return
	}
	_, _ = fmt.Fprintf(w, "<p id=\"echo\">%s/%s via %s</p>", res.PluginName(), res.RouteName(), plugin.APIBaseURL(r.Context()))
})

func testManifests() []plugin.Manifest {
	return []plugin.Manifest{
		{
			Name:        "ocelot",
			Label:       "OCELOT",
			Description: "Browse **events** and objects.",
			Category:    plugin.CategoryVisualizer,
			Routes: []plugin.Route{
				{Name: "eventOverview", Path: "event-overview", Label: "Event Overview", ComponentRef: "ocelot.EventOverview", Component: contextEcho},
				{Name: "events", Path: "events", Label: "Events", ComponentRef: "ocelot.Events", Component: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Cache-Control", "no-store")
					_, _ = io.WriteString(w, `<table id="events"></table>`)
				})},
				{Name: "export", Path: "export", Label: "Export", ComponentRef: "ocelot.Export", Component: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					_, _ = io.WriteString(w, `{"events":[]}`)
				})},
				{Name: "broken", Path: "broken", Label: "Broken", ComponentRef: "ocelot.Broken", Component: http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
					panic("boom")
				})},
				{Name: "gone", Path: "gone", Label: "Gone", ComponentRef: "ocelot.Gone", Component: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
				})},
			},
		},
		{
			Name:     "berti",
			Label:    "Berti Discovery",
			Category: plugin.CategoryMiner,
			Authors:  []plugin.Author{{Name: "Alessandro Berti"}},
			Routes: []plugin.Route{
				{Name: "ocdfg", Path: "ocdfg", Label: "OC-DFG", ComponentRef: "berti.OCDFG", Component: contextEcho},
			},
		},
	}
}

func testIndex(t *testing.T) *plugin.Index {
	t.Helper()
	idx, err := plugin.NewIndex(testManifests()...)
	require.NoError(t, err)
	return idx
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the handlers the way the server does.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	idx := testIndex(t)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, Index: idx, Version: "test"})
	require.NoError(t, err)

	pages := NewPluginHandler(idx, renderer, testLogger(), testAPIBaseURL)
	api := NewAPIHandler(idx)
	health := NewHealthHandler(idx, version.Info{Version: "test"})

	r := chi.NewRouter()
	r.NotFound(pages.NotFound)
	r.Get(RouteRoot, pages.Home)
	r.Get(RoutePlugin, pages.Overview)
	r.Get(RoutePluginRoute, pages.Route)
	r.Get(RouteHealth, health.Health)
	r.Route(RouteAPIPrefix, func(r chi.Router) {
		r.Get(RouteAPIPlugins, api.List)
		r.Get(RouteAPIPlugin, api.Get)
	})
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
