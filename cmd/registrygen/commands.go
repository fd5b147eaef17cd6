// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/olegiv/ocelview/internal/builder"
	"github.com/olegiv/ocelview/internal/logging"
)

// Layout of the generated registry relative to the module root.
const (
	pluginsDir   = "plugins"
	artifactFile = "registry.json"
	sourceFile   = "zz_registry.go"
)

var errPluginsFailed = errors.New("one or more plugins failed")

// app holds the process environment of a registrygen run.
type app struct {
	stdout io.Writer
	stderr io.Writer
	// dir is where the module root lookup starts.
	dir   string
	level string
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "registrygen",
		Short: "Generate the static plugin registry",
		Long: `registrygen scans plugins/ for plugin directories and overwrites
plugins/registry.json and plugins/zz_registry.go with the registry of every
plugin that loaded. Plugins that fail to load are logged and left out.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the plugins and routes found by a scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, _, err := a.scan()
			if err != nil {
				return err
			}
			return writeTable(a.stdout, res)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Scan without writing; fail if any plugin cannot be registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, _, err := a.scan()
			if err != nil {
				return err
			}
			for _, f := range res.Failures {
				_, _ = fmt.Fprintf(a.stdout, "FAIL %s: %v\n", f.Dir, f.Err)
			}
			for _, e := range res.Excluded {
				_, _ = fmt.Fprintf(a.stdout, "SKIP %s/%s: %v\n", e.Dir, e.File, e.Err)
			}
			if res.Failed() {
				return errPluginsFailed
			}
			_, _ = fmt.Fprintf(a.stdout, "ok: %d plugins\n", len(res.Plugins))
			return nil
		},
	})

	return root
}

// generate scans and writes both registry files.
func (a *app) generate() error {
	res, dir, err := a.scan()
	if err != nil {
		return err
	}

	return res.Write(filepath.Join(dir, artifactFile), filepath.Join(dir, sourceFile), builder.DefaultSourceOptions())
}

// scan scans the plugins directory of the enclosing module and returns the
// result with the absolute plugins directory.
func (a *app) scan() (*builder.Result, string, error) {
	logger, closer, err := logging.New(a.stderr, logging.Options{Level: a.level})
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = closer.Close() }()

	root, err := findModuleRoot(a.dir)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("module root found", "root", root)

	res, err := builder.New(logger).Scan(os.DirFS(root), pluginsDir)
	if err != nil {
		return nil, "", err
	}
	if res.Failed() {
		logger.Warn("registry built with failures", "failed", len(res.Failures))
	}
	return res, filepath.Join(root, pluginsDir), nil
}

// findModuleRoot walks up from dir to the first directory holding go.mod.
func findModuleRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found; run registrygen inside the module")
		}
		dir = parent
	}
}

// writeTable prints one row per route, and a row for plugins without routes.
func writeTable(w io.Writer, res *builder.Result) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Top: tw.On, Bottom: tw.On, Left: tw.On, Right: tw.On},
		}),
	)
	table.Header("Plugin", "Category", "Route", "Path", "Component")

	for _, p := range res.Plugins {
		if len(p.Routes) == 0 {
			if err := table.Append(p.Name, string(p.Category), "-", "-", "-"); err != nil {
				return err
			}
			continue
		}
		for _, r := range p.Routes {
			if err := table.Append(p.Name, string(p.Category), r.Name, r.Path, p.ComponentRef(r)); err != nil {
				return err
			}
		}
	}
	for _, f := range res.Failures {
		if err := table.Append(f.Dir, "failed", "-", "-", f.Err.Error()); err != nil {
			return err
		}
	}

	return table.Render()
}
