// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"log/slog"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ocelview/internal/config"
	"github.com/olegiv/ocelview/internal/handler"
	"github.com/olegiv/ocelview/internal/middleware"
	"github.com/olegiv/ocelview/internal/plugin"
	"github.com/olegiv/ocelview/internal/render"
	"github.com/olegiv/ocelview/internal/version"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	index    *plugin.Index
	renderer *render.Renderer
	version  version.Info
}

// newRouter wires the middleware stack and all routes.
func newRouter(d routerDeps) chi.Router {
	pluginHandler := handler.NewPluginHandler(d.index, d.renderer, d.logger, d.cfg.APIBaseURL)
	apiHandler := handler.NewAPIHandler(d.index)
	healthHandler := handler.NewHealthHandler(d.index, d.version)

	r := chi.NewRouter()

	if d.cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(d.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(d.cfg.IsDevelopment(), apiOrigin(d.cfg.APIBaseURL))))

	r.Get(handler.RouteHealth, healthHandler.Health)

	r.Get(handler.RouteRoot, pluginHandler.Home)
	r.Get(handler.RoutePlugin, pluginHandler.Overview)
	r.Get(handler.RoutePluginRoute, pluginHandler.Route)

	r.Route(handler.RouteAPIPrefix, func(r chi.Router) {
		apiRateLimiter := middleware.NewClientRateLimiter(d.cfg.APIRateLimit, d.cfg.APIRateBurst, d.logger)
		r.Use(apiRateLimiter.Middleware())

		r.Get(handler.RouteAPIPlugins, apiHandler.List)
		r.Get(handler.RouteAPIPlugin, apiHandler.Get)
	})

	r.NotFound(pluginHandler.NotFound)

	return r
}

// apiOrigin returns scheme://host of the OCEL API URL for the CSP.
func apiOrigin(apiBaseURL string) string {
	u, err := url.Parse(apiBaseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
