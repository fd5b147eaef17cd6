// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocelview/internal/middleware"
	"github.com/olegiv/ocelview/internal/plugin"
	"github.com/olegiv/ocelview/internal/render"
)

// PluginHandler serves the navigation pages and the plugin routes.
type PluginHandler struct {
	index      *plugin.Index
	renderer   *render.Renderer
	logger     *slog.Logger
	apiBaseURL string
}

// NewPluginHandler creates a new PluginHandler. apiBaseURL is handed to
// route components through the request context.
func NewPluginHandler(index *plugin.Index, renderer *render.Renderer, logger *slog.Logger, apiBaseURL string) *PluginHandler {
	return &PluginHandler{
		index:      index,
		renderer:   renderer,
		logger:     logger,
		apiBaseURL: apiBaseURL,
	}
}

// Home handles GET / - the plugin list grouped by category.
func (h *PluginHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, templateHome, render.TemplateData{Title: "Plugins"})
}

// Overview handles GET /plugin/{plugin}.
func (h *PluginHandler) Overview(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resolve(w, r, urlParam(r, ParamPlugin))
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, templateOverview, render.TemplateData{
		Title:  res.Plugin.Label,
		Data:   res.Plugin,
		Plugin: res.PluginName(),
	})
}

// Route handles GET /plugin/{plugin}/{route}. The route component serves the
// request with the resolution on its context. HTML fragments it writes are
// framed by the layout; other responses are passed through.
func (h *PluginHandler) Route(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resolve(w, r, urlParam(r, ParamPlugin), urlParam(r, ParamRoute))
	if !ok {
		return
	}

	ctx := plugin.WithResolution(r.Context(), res)
	ctx = plugin.WithAPIBaseURL(ctx, h.apiBaseURL)

	fw := newFragmentWriter()
	if err := serveComponent(res.Route.Component, fw, r.WithContext(ctx)); err != nil {
		h.logger.Error("route component failed",
			"plugin", res.PluginName(),
			"route", res.RouteName(),
			"component", res.Route.ComponentRef,
			"error", err,
		)
		h.render(w, r, http.StatusInternalServerError, templateError, render.TemplateData{
			Title: "Error",
			Data:  middleware.GetRequestID(r.Context()),
		})
		return
	}

	if !fw.IsFragment() {
		fw.PassThrough(w)
		return
	}

	fw.CopyHeaders(w, true)
	h.render(w, r, http.StatusOK, templateRoute, render.TemplateData{
		Title:   res.Route.Label + " · " + res.Plugin.Label,
		Plugin:  res.PluginName(),
		Route:   res.RouteName(),
		Content: fw.Fragment(),
	})
}

// NotFound renders the 404 page for any unmatched path.
func (h *PluginHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, templateNotFound, render.TemplateData{Title: "Not found"})
}

// resolve resolves the segments or writes the 404 page.
func (h *PluginHandler) resolve(w http.ResponseWriter, r *http.Request, segments ...string) (plugin.Resolution, bool) {
	res, err := h.index.Resolve(segments...)
	if err != nil {
		if !errors.Is(err, plugin.ErrNotFound) {
			h.logger.Error("resolving plugin route", "path", r.URL.Path, "error", err)
		}
		h.NotFound(w, r)
		return plugin.Resolution{}, false
	}
	return res, true
}

func (h *PluginHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.logger.Error("rendering page", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// serveComponent runs the component and converts a panic into an error.
func serveComponent(c http.Handler, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			err = &componentPanic{value: p}
		}
	}()
	c.ServeHTTP(w, r)
	return nil
}

// urlParam returns the unescaped chi URL parameter.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
