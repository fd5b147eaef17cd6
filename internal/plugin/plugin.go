// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package plugin defines the plugin manifest model, the immutable registry
// index built from the generated plugin listing, and the resolver that maps
// /plugin/<name>[/<route>] URLs to renderable units.
package plugin

import (
	"net/http"
	"strings"
)

// Category groups plugins in the navigation menu.
type Category string

// Plugin categories.
const (
	CategoryVisualizer Category = "visualizer"
	CategoryMiner      Category = "miner"
	CategoryFilter     Category = "filter"
	CategoryOther      Category = "other"
)

// Categories returns all categories in menu order.
func Categories() []Category {
	return []Category{CategoryVisualizer, CategoryMiner, CategoryFilter, CategoryOther}
}

// ParseCategory maps a declared category to a known value.
// Unknown and empty values map to CategoryOther.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryVisualizer, CategoryMiner, CategoryFilter:
		return c
	default:
		return CategoryOther
	}
}

// Label returns the menu heading for the category.
func (c Category) Label() string {
	switch c {
	case CategoryVisualizer:
		return "Visualizers"
	case CategoryMiner:
		return "Miners"
	case CategoryFilter:
		return "Filters"
	default:
		return "Other"
	}
}

// Author is a plugin author record.
type Author struct {
	Name string `json:"name" yaml:"name"`
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Route is one navigable unit of a plugin.
type Route struct {
	// Name is the name declared in the page config.
	Name string
	// Path is the URL path segment, a slug of Name.
	Path  string
	Label string
	// ComponentRef names the component in the generated source, e.g. "berti.OCDFG".
	ComponentRef string
	// Component renders the route. Its internals are owned by the plugin.
	Component http.Handler
}

// Manifest is the self-declared metadata of a plugin.
type Manifest struct {
	Name        string
	Label       string
	Description string
	Category    Category
	// Package is the Go package directory of the plugin under plugins/.
	Package string
	Authors []Author
	Routes  []Route
}

// Route returns the route whose path segment matches segment. When no path
// matches, the declared route name is tried.
func (m *Manifest) Route(segment string) (*Route, bool) {
	if segment == "" {
		return nil, false
	}
	for i := range m.Routes {
		if m.Routes[i].Path == segment {
			return &m.Routes[i], true
		}
	}
	for i := range m.Routes {
		if m.Routes[i].Name == segment {
			return &m.Routes[i], true
		}
	}
	return nil, false
}

// URL returns the overview URL of the plugin.
func (m *Manifest) URL() string {
	return OverviewURL(m.Name)
}

// OverviewURL returns /plugin/<name>.
func OverviewURL(name string) string {
	return PathPrefix + name
}

// RouteURL returns /plugin/<name>/<path>.
func RouteURL(name, path string) string {
	return PathPrefix + name + "/" + path
}
