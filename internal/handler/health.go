// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/olegiv/ocelview/internal/plugin"
	"github.com/olegiv/ocelview/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	index     *plugin.Index
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(index *plugin.Index, info version.Info) *HealthHandler {
	return &HealthHandler{
		index:     index,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatus represents the health response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   string    `json:"version"`
	Plugins   int       `json:"plugins"`
}

// Health handles GET /health requests. The registry is built at compile
// time, so a running server is always healthy.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Plugins:   h.index.Len(),
	})
}
