// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ocelot provides the event and object browsing views.
package ocelot

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/ocelview/internal/plugin"
)

// Route components.
var (
	EventOverview  http.Handler = overview{kind: "event"}
	Events         http.Handler = table{kind: "event", columns: []string{"ID", "Activity", "Timestamp", "Objects"}}
	ObjectOverview http.Handler = overview{kind: "object"}
	Objects        http.Handler = table{kind: "object", columns: []string{"ID", "Type", "Attributes", "Events"}}
)

const pageSize = 50

var views = template.Must(template.New("").Parse(`
{{define "overview"}}<section class="ocelot-overview" data-endpoint="{{.Endpoint}}">
<h1>{{.Title}}</h1>
<dl class="type-counts"></dl>
<p><a href="{{.List}}">Browse all {{.Kind}}s</a></p>
</section>
{{end}}
{{define "table"}}<section class="ocelot-table">
<h1>{{.Title}}</h1>
<table data-endpoint="{{.Endpoint}}">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody></tbody>
</table>
<nav class="pager">{{if .Prev}}<a href="?page={{.Prev}}" rel="prev">Previous</a> {{end}}<a href="?page={{.Next}}" rel="next">Next</a></nav>
</section>
{{end}}`))

// overview renders the per-type counts of events or objects.
type overview struct {
	kind string
}

func (o overview) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list := ""
	if res, ok := plugin.FromContext(r.Context()); ok {
		list = plugin.RouteURL(res.PluginName(), o.kind+"s")
	}

	writeView(w, "overview", map[string]any{
		"Title":    strings.ToUpper(o.kind[:1]) + o.kind[1:] + " Overview",
		"Kind":     o.kind,
		"List":     list,
		"Endpoint": endpoint(r, "/"+o.kind+"s/summary", nil),
	})
}

// table renders one page of events or objects. The page query parameter
// selects the page, starting at 1.
type table struct {
	kind    string
	columns []string
}

func (t table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "invalid page number", http.StatusBadRequest)
			return
		}
		page = n
	}

	query := url.Values{}
	query.Set("offset", strconv.Itoa((page-1)*pageSize))
	query.Set("limit", strconv.Itoa(pageSize))

	prev := 0
	if page > 1 {
		prev = page - 1
	}
	writeView(w, "table", map[string]any{
		"Title":    strings.ToUpper(t.kind[:1]) + t.kind[1:] + "s",
		"Columns":  t.columns,
		"Endpoint": endpoint(r, "/"+t.kind+"s", query),
		"Prev":     prev,
		"Next":     page + 1,
	})
}

// endpoint builds an OCEL API URL from the base URL on the request context.
func endpoint(r *http.Request, path string, query url.Values) string {
	u := strings.TrimRight(plugin.APIBaseURL(r.Context()), "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func writeView(w http.ResponseWriter, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
