// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoute(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Resolve("ocelot", "events")
	require.NoError(t, err)

	assert.False(t, res.Overview)
	assert.Equal(t, "ocelot", res.PluginName())
	assert.Equal(t, "events", res.RouteName())
	assert.Equal(t, namedHandler("events"), res.Route.Component)
}

func TestResolveOverview(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Resolve("berti")
	require.NoError(t, err)

	assert.True(t, res.Overview)
	assert.Nil(t, res.Route)
	assert.Equal(t, "berti", res.PluginName())
	assert.Equal(t, "", res.RouteName())
	assert.Len(t, res.Plugin.Routes, 2)
}

func TestResolveDeclaredNameFallback(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Resolve("ocelot", "eventOverview")
	require.NoError(t, err)
	assert.Equal(t, "event-overview", res.RouteName())
}

func TestResolveNotFound(t *testing.T) {
	idx := testIndex(t)

	tests := []struct {
		name     string
		segments []string
	}{
		{"no segments", nil},
		{"empty plugin", []string{""}},
		{"unknown plugin", []string{"nosuchplugin"}},
		{"unknown plugin with route", []string{"nosuchplugin", "events"}},
		{"unknown route", []string{"ocelot", "nonexistent"}},
		{"empty route", []string{"ocelot", ""}},
		{"route of another plugin", []string{"berti", "events"}},
		{"too many segments", []string{"ocelot", "events", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := idx.Resolve(tt.segments...)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestResolveRoundTrip(t *testing.T) {
	idx := testIndex(t)

	for _, m := range idx.List() {
		for _, r := range m.Routes {
			res, err := idx.Resolve(m.Name, r.Path)
			require.NoError(t, err, "%s/%s", m.Name, r.Path)
			assert.Equal(t, r.Component, res.Route.Component)
			assert.Equal(t, r.ComponentRef, res.Route.ComponentRef)
		}
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want []string
		ok   bool
	}{
		{"/plugin/ocelot", []string{"ocelot"}, true},
		{"/plugin/ocelot/", []string{"ocelot"}, true},
		{"/plugin/ocelot/events", []string{"ocelot", "events"}, true},
		{"/plugin/", nil, false},
		{"/plugin", nil, false},
		{"/module/ocelot", nil, false},
		{"/plugin//events", nil, false},
		{"/plugin/ocelot/events/extra", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ParsePath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePath(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.ResolvePath("/plugin/berti/petrinet")
	require.NoError(t, err)
	assert.Equal(t, "petrinet", res.RouteName())

	_, err = idx.ResolvePath("/elsewhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolutionContext(t *testing.T) {
	idx := testIndex(t)
	res, err := idx.Resolve("berti", "ocdfg")
	require.NoError(t, err)

	ctx := WithResolution(context.Background(), res)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "berti", got.PluginName())
	assert.Equal(t, "ocdfg", got.RouteName())

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func TestAPIBaseURLContext(t *testing.T) {
	assert.Equal(t, "", APIBaseURL(context.Background()))

	ctx := WithAPIBaseURL(context.Background(), "http://localhost:8000")
	assert.Equal(t, "http://localhost:8000", APIBaseURL(ctx))
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/plugin/berti", OverviewURL("berti"))
	assert.Equal(t, "/plugin/berti/ocdfg", RouteURL("berti", "ocdfg"))

	m := Manifest{Name: "ocelot"}
	assert.Equal(t, "/plugin/ocelot", m.URL())
}
