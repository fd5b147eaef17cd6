// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RoutePlugin is the plugin overview route.
	RoutePlugin = "/plugin/{plugin}"
	// RoutePluginRoute is the plugin route component route.
	RoutePluginRoute = "/plugin/{plugin}/{route}"
	// RouteHealth is the health check route.
	RouteHealth = "/health"

	// RouteAPIPrefix mounts the JSON API.
	RouteAPIPrefix = "/api"
	// RouteAPIPlugins lists all plugins.
	RouteAPIPlugins = "/plugins"
	// RouteAPIPlugin returns one plugin.
	RouteAPIPlugin = "/plugins/{plugin}"
)

// URL parameter names.
const (
	ParamPlugin = "plugin"
	ParamRoute  = "route"
)

// Template names.
const (
	templateHome     = "home"
	templateOverview = "overview"
	templateRoute    = "route"
	templateNotFound = "not_found"
	templateError    = "error"
)
