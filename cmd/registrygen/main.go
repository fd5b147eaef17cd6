// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command registrygen scans the plugins directory of the module and writes the
// static plugin registry: plugins/registry.json and plugins/zz_registry.go.
//
// It is run by go generate from plugins/doc.go, and can be run from anywhere
// inside the module.
package main

import (
	"fmt"
	"os"
)

func main() {
	wd, err := os.Getwd()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "registrygen: %v\n", err)
		os.Exit(1)
	}

	app := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		dir:    wd,
		level:  os.Getenv("OCELVIEW_LOG_LEVEL"),
	}
	if err := app.command().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "registrygen: %v\n", err)
		os.Exit(1)
	}
}
