// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package builder

import (
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/olegiv/ocelview/internal/plugin"
	"github.com/olegiv/ocelview/internal/util"
)

// Filesystem layout of a plugin directory.
const (
	ManifestBase = "index"
	PagesDir     = "pages"
)

// Extensions accepted for manifest and page files, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// ErrNoManifest is returned when a plugin directory has no manifest file.
var ErrNoManifest = errors.New("no manifest file")

// Page exclusion reasons.
var (
	errNoConfig       = errors.New("no config export")
	errInvalidConfig  = errors.New("invalid config export")
	errInvalidCompRef = errors.New("component must be an exported Go identifier")
)

// pluginNameRegex restricts plugin names to URL path segment characters.
var pluginNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// reservedPackages cannot be used as plugin directory names because the
// generated source imports them.
var reservedPackages = map[string]bool{
	"plugin": true,
}

// manifestFile is the on-disk shape of index.yaml.
type manifestFile struct {
	Name        string          `yaml:"name"`
	Label       string          `yaml:"label"`
	Description string          `yaml:"description"`
	Category    string          `yaml:"category"`
	Authors     []plugin.Author `yaml:"authors"`
}

// pageFile is the on-disk shape of pages/<file>.yaml. Config is decoded
// separately so that its shape can be checked.
type pageFile struct {
	Config    any    `yaml:"config"`
	Component string `yaml:"component"`
}

// routeConfig is the named configuration export of a page.
type routeConfig struct {
	Name  string `mapstructure:"name"`
	Label string `mapstructure:"label"`
}

// findManifest returns the path of the first manifest file present in dir.
func findManifest(fsys fs.FS, dir string) (string, error) {
	for _, ext := range Extensions {
		p := path.Join(dir, ManifestBase+ext)
		info, err := fs.Stat(fsys, p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return "", ErrNoManifest
}

// loadManifest reads and validates a manifest file.
func loadManifest(fsys fs.FS, file string) (manifestFile, error) {
	var m manifestFile

	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", file, err)
	}

	m.Name = strings.TrimSpace(m.Name)
	m.Label = strings.TrimSpace(m.Label)

	if m.Name == "" {
		return m, fmt.Errorf("manifest %s: name is required", file)
	}
	if m.Label == "" {
		return m, fmt.Errorf("manifest %s: label is required", file)
	}
	if !pluginNameRegex.MatchString(m.Name) {
		return m, fmt.Errorf("manifest %s: name %q is not a valid path segment", file, m.Name)
	}
	for i, a := range m.Authors {
		if strings.TrimSpace(a.Name) == "" {
			return m, fmt.Errorf("manifest %s: author %d has no name", file, i)
		}
	}

	return m, nil
}

// loadPage reads a page file and extracts its route.
func loadPage(fsys fs.FS, file string) (RouteEntry, error) {
	var r RouteEntry

	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return r, fmt.Errorf("reading page: %w", err)
	}

	var p pageFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return r, fmt.Errorf("parsing page: %w", err)
	}
	if p.Config == nil {
		return r, errNoConfig
	}

	var cfg routeConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: false,
	})
	if err != nil {
		return r, fmt.Errorf("creating config decoder: %w", err)
	}
	if err := dec.Decode(p.Config); err != nil {
		return r, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}

	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Label = strings.TrimSpace(cfg.Label)
	if cfg.Name == "" || cfg.Label == "" {
		return r, fmt.Errorf("%w: name and label are required", errInvalidConfig)
	}

	slug := util.Slugify(cfg.Name)
	if !util.IsValidSlug(slug) {
		return r, fmt.Errorf("%w: name %q has no usable path segment", errInvalidConfig, cfg.Name)
	}

	comp := strings.TrimSpace(p.Component)
	if !isExportedIdent(comp) {
		return r, fmt.Errorf("%w: %q", errInvalidCompRef, comp)
	}

	return RouteEntry{
		Name:      cfg.Name,
		Path:      slug,
		Label:     cfg.Label,
		Component: comp,
		File:      file,
	}, nil
}

// isExportedIdent reports whether s can be referenced as pkg.s from another package.
func isExportedIdent(s string) bool {
	return token.IsIdentifier(s) && token.IsExported(s)
}

// isPackageName reports whether a directory name can be imported as a Go
// package under its own name by the generated source.
func isPackageName(s string) bool {
	return token.IsIdentifier(s) && s != "_" && !reservedPackages[s]
}

// hasExtension reports whether name has one of the accepted extensions.
func hasExtension(name string) bool {
	ext := path.Ext(name)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
