// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"context"
	"errors"
	"strings"
)

// PathPrefix is the URL prefix under which plugins are served.
const PathPrefix = "/plugin/"

// ErrNotFound is returned when a plugin or route does not exist.
var ErrNotFound = errors.New("plugin not found")

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	Plugin *Manifest
	// Route is nil for overview resolutions.
	Route    *Route
	Overview bool
}

// PluginName returns the resolved plugin name.
func (r Resolution) PluginName() string {
	if r.Plugin == nil {
		return ""
	}
	return r.Plugin.Name
}

// RouteName returns the resolved route path segment, or "" for overviews.
func (r Resolution) RouteName() string {
	if r.Route == nil {
		return ""
	}
	return r.Route.Path
}

// Resolve maps the path segments [pluginName, routeName?] to a plugin
// overview or a route. Unknown plugins and unknown routes both yield
// ErrNotFound.
func (idx *Index) Resolve(segments ...string) (Resolution, error) {
	if len(segments) == 0 || len(segments) > 2 || segments[0] == "" {
		return Resolution{}, ErrNotFound
	}

	m, ok := idx.Get(segments[0])
	if !ok {
		return Resolution{}, ErrNotFound
	}

	if len(segments) == 1 {
		return Resolution{Plugin: m, Overview: true}, nil
	}

	route, ok := m.Route(segments[1])
	if !ok {
		return Resolution{}, ErrNotFound
	}
	return Resolution{Plugin: m, Route: route}, nil
}

// ParsePath splits /plugin/<name> and /plugin/<name>/<route> into segments.
// It reports false for paths outside PathPrefix or with empty segments.
func ParsePath(urlPath string) ([]string, bool) {
	rest, ok := strings.CutPrefix(urlPath, PathPrefix)
	if !ok {
		return nil, false
	}
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" {
		return nil, false
	}

	segments := strings.Split(rest, "/")
	if len(segments) > 2 {
		return nil, false
	}
	for _, s := range segments {
		if s == "" {
			return nil, false
		}
	}
	return segments, true
}

// ResolvePath parses urlPath and resolves it against the index.
func (idx *Index) ResolvePath(urlPath string) (Resolution, error) {
	segments, ok := ParsePath(urlPath)
	if !ok {
		return Resolution{}, ErrNotFound
	}
	return idx.Resolve(segments...)
}

type (
	contextKey    struct{}
	apiBaseURLKey struct{}
)

// WithResolution stores a resolution on the context for the route component.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, contextKey{}, res)
}

// FromContext returns the resolution stored by WithResolution.
func FromContext(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(contextKey{}).(Resolution)
	return res, ok
}

// WithAPIBaseURL stores the base URL of the OCEL API that route components
// query for event and object data.
func WithAPIBaseURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, apiBaseURLKey{}, url)
}

// APIBaseURL returns the URL stored by WithAPIBaseURL, or "".
func APIBaseURL(ctx context.Context) string {
	url, _ := ctx.Value(apiBaseURLKey{}).(string)
	return url
}
