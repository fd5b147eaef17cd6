// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package plugins holds one directory per plugin and the registry generated
// from them. Do not edit zz_registry.go or registry.json; add or change a
// plugin directory and run go generate.
package plugins

//go:generate go run ../cmd/registrygen
