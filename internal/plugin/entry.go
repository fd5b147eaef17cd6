// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

// Entry is the serialisable form of a manifest. It is the value type of the
// generated registry.json artifact and of the navigation API.
type Entry struct {
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Category    Category     `json:"category"`
	Package     string       `json:"package"`
	Authors     []Author     `json:"authors,omitempty"`
	Routes      []EntryRoute `json:"routes"`
}

// EntryRoute is the serialisable form of a route.
type EntryRoute struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Label        string `json:"label"`
	ComponentRef string `json:"componentRef"`
}

// Entry returns the serialisable form of the manifest.
func (m *Manifest) Entry() Entry {
	e := Entry{
		Label:       m.Label,
		Description: m.Description,
		Category:    m.Category,
		Package:     m.Package,
		Authors:     m.Authors,
		Routes:      make([]EntryRoute, 0, len(m.Routes)),
	}
	for _, r := range m.Routes {
		e.Routes = append(e.Routes, EntryRoute{
			Name:         r.Name,
			Path:         r.Path,
			Label:        r.Label,
			ComponentRef: r.ComponentRef,
		})
	}
	return e
}

// Entries returns the serialisable form of every manifest keyed by plugin name.
func (idx *Index) Entries() map[string]Entry {
	entries := make(map[string]Entry, idx.Len())
	for _, m := range idx.List() {
		entries[m.Name] = m.Entry()
	}
	return entries
}
