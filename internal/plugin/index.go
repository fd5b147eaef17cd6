// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrInvalidManifest is returned by NewIndex for manifests that break the
// index invariants.
var ErrInvalidManifest = errors.New("invalid plugin manifest")

// Index is the registry of all plugins, keyed by plugin name.
// It is built once and never modified, so it is safe for concurrent use.
type Index struct {
	manifests map[string]*Manifest
	names     []string // sorted
}

// NewIndex validates the manifests and builds an index from them.
// Manifests and their routes are copied; later changes to the arguments do
// not affect the index.
func NewIndex(manifests ...Manifest) (*Index, error) {
	idx := &Index{
		manifests: make(map[string]*Manifest, len(manifests)),
		names:     make([]string, 0, len(manifests)),
	}

	for _, m := range manifests {
		if err := validateManifest(m); err != nil {
			return nil, err
		}
		if _, exists := idx.manifests[m.Name]; exists {
			return nil, fmt.Errorf("%w: plugin %q registered twice", ErrInvalidManifest, m.Name)
		}

		m.Category = ParseCategory(string(m.Category))
		m.Authors = slices.Clone(m.Authors)
		m.Routes = slices.Clone(m.Routes)
		idx.manifests[m.Name] = &m
		idx.names = append(idx.names, m.Name)
	}

	sort.Strings(idx.names)
	return idx, nil
}

// MustNewIndex is like NewIndex but panics on error.
func MustNewIndex(manifests ...Manifest) *Index {
	idx, err := NewIndex(manifests...)
	if err != nil {
		panic(err)
	}
	return idx
}

func validateManifest(m Manifest) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidManifest)
	}
	if m.Label == "" {
		return fmt.Errorf("%w: plugin %q: label is required", ErrInvalidManifest, m.Name)
	}

	names := make(map[string]bool, len(m.Routes))
	paths := make(map[string]bool, len(m.Routes))
	for i, r := range m.Routes {
		switch {
		case r.Name == "":
			return fmt.Errorf("%w: plugin %q: route %d has no name", ErrInvalidManifest, m.Name, i)
		case r.Path == "":
			return fmt.Errorf("%w: plugin %q: route %q has no path", ErrInvalidManifest, m.Name, r.Name)
		case r.Component == nil:
			return fmt.Errorf("%w: plugin %q: route %q has no component", ErrInvalidManifest, m.Name, r.Name)
		case names[r.Name]:
			return fmt.Errorf("%w: plugin %q: duplicate route name %q", ErrInvalidManifest, m.Name, r.Name)
		case paths[r.Path]:
			return fmt.Errorf("%w: plugin %q: duplicate route path %q", ErrInvalidManifest, m.Name, r.Path)
		}
		names[r.Name] = true
		paths[r.Path] = true
	}
	return nil
}

// Get returns the manifest registered under name.
// The returned manifest is shared and must not be modified.
func (idx *Index) Get(name string) (*Manifest, bool) {
	if idx == nil {
		return nil, false
	}
	m, ok := idx.manifests[name]
	return m, ok
}

// Names returns all plugin names in sorted order.
func (idx *Index) Names() []string {
	if idx == nil {
		return []string{}
	}
	return slices.Clone(idx.names)
}

// List returns all manifests sorted by name.
func (idx *Index) List() []*Manifest {
	if idx == nil {
		return []*Manifest{}
	}
	list := make([]*Manifest, 0, len(idx.names))
	for _, name := range idx.names {
		list = append(list, idx.manifests[name])
	}
	return list
}

// ByCategory returns the manifests of each non-empty category, in menu order.
func (idx *Index) ByCategory() []CategoryGroup {
	var groups []CategoryGroup
	for _, c := range Categories() {
		var members []*Manifest
		for _, m := range idx.List() {
			if m.Category == c {
				members = append(members, m)
			}
		}
		if len(members) > 0 {
			groups = append(groups, CategoryGroup{Category: c, Plugins: members})
		}
	}
	return groups
}

// CategoryGroup is one section of the navigation menu.
type CategoryGroup struct {
	Category Category
	Plugins  []*Manifest
}

// Len returns the number of plugins.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.names)
}
