// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package berti provides the object-centric process discovery views.
package berti

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/olegiv/ocelview/internal/plugin"
)

// Route components.
var (
	OCDFG    http.Handler = model{title: "Object-Centric Directly-Follows Graph", endpoint: "/discovery/ocdfg"}
	PetriNet http.Handler = model{title: "Object-Centric Petri Net", endpoint: "/discovery/petrinet"}
)

var modelTemplate = template.Must(template.New("model").Parse(`<section class="berti-model">
<h1>{{.Title}}</h1>
<div class="model-canvas" data-endpoint="{{.Endpoint}}" role="img" aria-label="{{.Title}}"></div>
<p class="hint">The model is discovered from the OCEL log loaded into the API at <code>{{.API}}</code>.</p>
</section>
`))

// model renders the container a discovered model is drawn into.
type model struct {
	title    string
	endpoint string
}

func (m model) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api := strings.TrimRight(plugin.APIBaseURL(r.Context()), "/")

	var buf bytes.Buffer
	err := modelTemplate.Execute(&buf, struct {
		Title    string
		Endpoint string
		API      string
	}{
		Title:    m.title,
		Endpoint: api + m.endpoint,
		API:      api,
	})
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
