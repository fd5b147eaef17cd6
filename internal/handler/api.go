// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocelview/internal/middleware"
	"github.com/olegiv/ocelview/internal/plugin"
)

// APIHandler serves the navigation index as JSON.
type APIHandler struct {
	index *plugin.Index
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(index *plugin.Index) *APIHandler {
	return &APIHandler{index: index}
}

// List handles GET /api/plugins. The response has the shape of
// registry.json: plugin name to entry. The optional category query parameter
// filters by category.
func (h *APIHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.index.Entries()

	if c := r.URL.Query().Get("category"); c != "" {
		category := plugin.ParseCategory(c)
		for name, e := range entries {
			if e.Category != category {
				delete(entries, name)
			}
		}
	}

	writeJSON(w, http.StatusOK, entries)
}

// Get handles GET /api/plugins/{plugin}.
func (h *APIHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, ParamPlugin)

	m, ok := h.index.Get(name)
	if !ok {
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Plugin not found", map[string]string{
			"plugin": name,
		})
		return
	}

	writeJSON(w, http.StatusOK, m.Entry())
}
