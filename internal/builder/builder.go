// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package builder scans the plugins directory and generates the static plugin
// registry: a JSON artifact for navigation consumers and a Go source file
// that lists every plugin and its route components explicitly.
//
// Expected layout:
//
//	plugins/<dir>/index.yaml         manifest
//	plugins/<dir>/pages/<file>.yaml  one route per page
//	plugins/<dir>/*.go               package <dir> exporting the route components
package builder

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/olegiv/ocelview/internal/plugin"
)

// PluginEntry is a plugin accepted by the scan.
type PluginEntry struct {
	// Dir is the plugin directory, which is also its Go package name.
	Dir         string
	Name        string
	Label       string
	Description string
	Category    plugin.Category
	Authors     []plugin.Author
	Routes      []RouteEntry
}

// RouteEntry is a route extracted from a page file.
type RouteEntry struct {
	Name  string
	Path  string
	Label string
	// Component is the exported identifier of the component in the plugin package.
	Component string
	File      string
}

// ComponentRef returns the qualified component reference, e.g. "berti.OCDFG".
func (p PluginEntry) ComponentRef(r RouteEntry) string {
	return p.Dir + "." + r.Component
}

// Entry returns the artifact entry of the plugin.
func (p PluginEntry) Entry() plugin.Entry {
	e := plugin.Entry{
		Label:       p.Label,
		Description: p.Description,
		Category:    p.Category,
		Package:     p.Dir,
		Authors:     p.Authors,
		Routes:      make([]plugin.EntryRoute, 0, len(p.Routes)),
	}
	for _, r := range p.Routes {
		e.Routes = append(e.Routes, plugin.EntryRoute{
			Name:         r.Name,
			Path:         r.Path,
			Label:        r.Label,
			ComponentRef: p.ComponentRef(r),
		})
	}
	return e
}

// Failure records a plugin directory that could not be registered.
type Failure struct {
	Dir string
	Err error
}

func (f Failure) Error() string {
	return fmt.Sprintf("plugin %s: %v", f.Dir, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Excluded records a page that was left out of its plugin's routes.
type Excluded struct {
	Dir  string
	File string
	Err  error
}

// Result is the outcome of a scan.
type Result struct {
	Root string
	// Plugins holds the accepted plugins sorted by name.
	Plugins  []PluginEntry
	Failures []Failure
	Excluded []Excluded
	// Skipped lists directories without a manifest.
	Skipped []string
}

// Failed reports whether any plugin failed.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Err joins all plugin failures, or returns nil.
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Artifact returns the registry artifact keyed by plugin name.
func (r *Result) Artifact() Artifact {
	a := make(Artifact, len(r.Plugins))
	for _, p := range r.Plugins {
		a[p.Name] = p.Entry()
	}
	return a
}

// Builder scans plugin directories.
type Builder struct {
	logger *slog.Logger
}

// New creates a Builder. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Scan reads every plugin directory under root. A missing or unreadable root
// is an error. Problems with a single plugin are recorded in
// Result.Failures and the scan continues with the next directory.
func (b *Builder) Scan(fsys fs.FS, root string) (*Result, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading plugins directory %s: %w", root, err)
	}

	res := &Result{Root: root}
	seen := make(map[string]string) // plugin name -> dir

	for _, entry := range entries {
		dir := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(dir, ".") || strings.HasPrefix(dir, "_") {
			continue
		}

		p, err := b.scanPlugin(fsys, root, dir, res)
		if errors.Is(err, ErrNoManifest) {
			b.logger.Debug("no manifest, skipping directory", "dir", dir)
			res.Skipped = append(res.Skipped, dir)
			continue
		}
		if err == nil {
			if other, dup := seen[p.Name]; dup {
				err = fmt.Errorf("name %q already registered by %s", p.Name, other)
			}
		}
		if err != nil {
			b.logger.Error("plugin failed", "dir", dir, "error", err)
			res.Failures = append(res.Failures, Failure{Dir: dir, Err: err})
			continue
		}

		seen[p.Name] = dir
		res.Plugins = append(res.Plugins, p)
		b.logger.Info("plugin registered", "plugin", p.Name, "dir", dir, "routes", len(p.Routes))
	}

	sort.Slice(res.Plugins, func(i, j int) bool {
		return res.Plugins[i].Name < res.Plugins[j].Name
	})

	b.logger.Info("plugin scan complete",
		"root", root,
		"registered", len(res.Plugins),
		"failed", len(res.Failures),
		"skipped", len(res.Skipped),
	)
	return res, nil
}

// scanPlugin loads one plugin directory. Excluded pages are appended to res.
func (b *Builder) scanPlugin(fsys fs.FS, root, dir string, res *Result) (PluginEntry, error) {
	pluginDir := path.Join(root, dir)

	file, err := findManifest(fsys, pluginDir)
	if err != nil {
		return PluginEntry{}, err
	}

	m, err := loadManifest(fsys, file)
	if err != nil {
		return PluginEntry{}, err
	}
	if !isPackageName(dir) {
		return PluginEntry{}, fmt.Errorf("directory name %q is not a usable Go package name", dir)
	}

	pkg, err := loadPackage(fsys, pluginDir)
	if err != nil {
		return PluginEntry{}, err
	}
	if pkg.name != dir {
		return PluginEntry{}, fmt.Errorf("package %s does not match directory name %s", pkg.name, dir)
	}

	p := PluginEntry{
		Dir:         dir,
		Name:        m.Name,
		Label:       m.Label,
		Description: strings.TrimSpace(m.Description),
		Category:    plugin.ParseCategory(m.Category),
		Authors:     m.Authors,
	}

	routes, err := b.scanPages(fsys, pluginDir, dir, pkg, res)
	if err != nil {
		return PluginEntry{}, err
	}
	p.Routes = routes
	return p, nil
}

// scanPages loads pages/<file> in file name order. Pages that cannot be
// turned into a route, or whose component pkg does not declare, are excluded
// without failing the plugin.
func (b *Builder) scanPages(fsys fs.FS, pluginDir, dir string, pkg *goPackage, res *Result) ([]RouteEntry, error) {
	pagesDir := path.Join(pluginDir, PagesDir)

	entries, err := fs.ReadDir(fsys, pagesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []RouteEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}

	routes := make([]RouteEntry, 0, len(entries))
	names := make(map[string]bool)
	paths := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name()) {
			continue
		}
		file := path.Join(pagesDir, entry.Name())

		r, err := loadPage(fsys, file)
		if err == nil {
			err = pkg.checkComponent(r.Component)
		}
		if err == nil {
			switch {
			case names[r.Name]:
				err = fmt.Errorf("duplicate route name %q", r.Name)
			case paths[r.Path]:
				err = fmt.Errorf("duplicate route path %q", r.Path)
			}
		}
		if err != nil {
			b.logger.Warn("page excluded", "dir", dir, "file", entry.Name(), "error", err)
			res.Excluded = append(res.Excluded, Excluded{Dir: dir, File: entry.Name(), Err: err})
			continue
		}

		names[r.Name] = true
		paths[r.Path] = true
		routes = append(routes, r)
	}
	return routes, nil
}
