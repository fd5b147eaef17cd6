// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package builder

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"
)

// Default import paths of the generated source.
const (
	DefaultPackage       = "plugins"
	DefaultPluginsImport = "github.com/olegiv/ocelview/plugins"
	DefaultPluginAPI     = "github.com/olegiv/ocelview/internal/plugin"
)

// SourceOptions configures the generated Go source.
type SourceOptions struct {
	// Package is the package name of the generated file.
	Package string
	// PluginsImport is the import path of the plugins directory.
	PluginsImport string
	// PluginAPI is the import path of the plugin model package.
	PluginAPI string
}

// DefaultSourceOptions returns the options used by registrygen.
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Package:       DefaultPackage,
		PluginsImport: DefaultPluginsImport,
		PluginAPI:     DefaultPluginAPI,
	}
}

// identifiers declared by the template; generated constants must not collide.
var templateIdents = []string{
	"Name", "RouteID", "Names", "RouteIDs", "Manifests", "Index", "MustIndex",
}

type sourceData struct {
	Package   string
	PluginAPI string
	Imports   []string
	Plugins   []sourcePlugin
}

type sourcePlugin struct {
	Ident string
	PluginEntry
	Routes []sourceRoute
}

type sourceRoute struct {
	Ident string
	Ref   string
	RouteEntry
}

var sourceTemplate = template.Must(template.New("registry").Funcs(template.FuncMap{
	"quote": func(v any) string { return strconv.Quote(fmt.Sprint(v)) },
}).Parse(`// Code generated by registrygen. DO NOT EDIT.

package {{.Package}}

import (
	{{quote .PluginAPI}}
{{range .Imports}}
	{{quote .}}
{{- end}}
)

// Name identifies a registered plugin.
type Name string

{{if .Plugins -}}
// Registered plugins.
const (
{{- range .Plugins}}
	{{.Ident}} Name = {{quote .Name}}
{{- end}}
)
{{- end}}

// RouteID identifies a route of a registered plugin.
type RouteID struct {
	Plugin Name
	Route  string
}

{{if .Plugins -}}
// Registered routes.
var (
{{- range $p := .Plugins}}
{{- range .Routes}}
	{{.Ident}} = RouteID{Plugin: {{$p.Ident}}, Route: {{quote .Path}}}
{{- end}}
{{- end}}
)
{{- end}}

// Names returns all registered plugins sorted by name.
func Names() []Name {
	return []Name{
{{- range .Plugins}}
		{{.Ident}},
{{- end}}
	}
}

// Valid reports whether n is a registered plugin.
func (n Name) Valid() bool {
	for _, name := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Path returns the overview URL of the plugin.
func (n Name) Path() string {
	return plugin.OverviewURL(string(n))
}

// RouteIDs returns all registered routes.
func RouteIDs() []RouteID {
	return []RouteID{
{{- range .Plugins}}
{{- range .Routes}}
		{{.Ident}},
{{- end}}
{{- end}}
	}
}

// Path returns the URL of the route.
func (id RouteID) Path() string {
	return plugin.RouteURL(string(id.Plugin), id.Route)
}

// Manifests returns the manifest of every registered plugin.
func Manifests() []plugin.Manifest {
	return []plugin.Manifest{
{{- range .Plugins}}
		{
			Name:        {{quote .Name}},
			Label:       {{quote .Label}},
			Description: {{quote .Description}},
			Category:    {{quote .Category}},
			Package:     {{quote .Dir}},
{{- if .Authors}}
			Authors: []plugin.Author{
{{- range .Authors}}
				{Name: {{quote .Name}}, Link: {{quote .Link}}},
{{- end}}
			},
{{- end}}
			Routes: []plugin.Route{
{{- range .Routes}}
				{
					Name:         {{quote .Name}},
					Path:         {{quote .Path}},
					Label:        {{quote .Label}},
					ComponentRef: {{quote .Ref}},
					Component:    {{.Ref}},
				},
{{- end}}
			},
		},
{{- end}}
	}
}

// Index builds the registry index of all registered plugins.
func Index() (*plugin.Index, error) {
	return plugin.NewIndex(Manifests()...)
}

// MustIndex is like Index but panics on error.
func MustIndex() *plugin.Index {
	return plugin.MustNewIndex(Manifests()...)
}
`))

// Source renders the generated Go source for the scan result.
func (r *Result) Source(opts SourceOptions) ([]byte, error) {
	if opts.Package == "" || opts.PluginsImport == "" || opts.PluginAPI == "" {
		return nil, fmt.Errorf("incomplete source options: %+v", opts)
	}

	used := make(map[string]bool)
	for _, id := range templateIdents {
		used[id] = true
	}
	unique := func(base string) string {
		ident := base
		for i := 2; used[ident]; i++ {
			ident = base + strconv.Itoa(i)
		}
		used[ident] = true
		return ident
	}

	data := sourceData{
		Package:   opts.Package,
		PluginAPI: opts.PluginAPI,
	}

	// Only route components reference a plugin package; importing a package
	// without routes would leave the import unused.
	dirs := make(map[string]bool)
	for _, p := range r.Plugins {
		if len(p.Routes) > 0 && !dirs[p.Dir] {
			dirs[p.Dir] = true
			data.Imports = append(data.Imports, opts.PluginsImport+"/"+p.Dir)
		}
	}
	sort.Strings(data.Imports)

	for _, p := range r.Plugins {
		sp := sourcePlugin{
			Ident:       unique(exportedIdent(p.Name)),
			PluginEntry: p,
		}
		for _, route := range p.Routes {
			sp.Routes = append(sp.Routes, sourceRoute{
				Ident:      unique(sp.Ident + exportedIdent(route.Path)),
				Ref:        p.ComponentRef(route),
				RouteEntry: route,
			})
		}
		data.Plugins = append(data.Plugins, sp)
	}

	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering source: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting source: %w", err)
	}
	return src, nil
}

// WriteSource writes the generated Go source to path.
func (r *Result) WriteSource(path string, opts SourceOptions) error {
	src, err := r.Source(opts)
	if err != nil {
		return err
	}
	return writeFile(path, src)
}

// exportedIdent converts a name such as "event-overview" or "berti" to an
// exported Go identifier ("EventOverview", "Berti").
func exportedIdent(s string) string {
	var sb strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}

	ident := sb.String()
	if ident == "" || !unicode.IsUpper([]rune(ident)[0]) {
		ident = "P" + ident
	}
	return ident
}
