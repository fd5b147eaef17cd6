// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olegiv/ocelview/internal/plugin"
)

// Artifact is the content of registry.json: plugin name -> entry.
type Artifact map[string]plugin.Entry

// Marshal encodes the artifact deterministically: map keys sorted,
// two-space indentation, trailing newline.
func (a Artifact) Marshal() ([]byte, error) {
	if a == nil {
		a = Artifact{}
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding artifact: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteArtifact writes the registry.json artifact to path.
func (r *Result) WriteArtifact(path string) error {
	data, err := r.Artifact().Marshal()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// Write renders the artifact and the Go source and then writes both, so a
// rendering error leaves the existing files untouched.
func (r *Result) Write(artifactPath, sourcePath string, opts SourceOptions) error {
	data, err := r.Artifact().Marshal()
	if err != nil {
		return err
	}
	src, err := r.Source(opts)
	if err != nil {
		return err
	}

	if err := writeFile(artifactPath, data); err != nil {
		return err
	}
	return writeFile(sourcePath, src)
}

// ReadArtifact reads a registry.json artifact.
func ReadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing artifact %s: %w", path, err)
	}
	return a, nil
}

// writeFile replaces path with data via a temporary file in the same
// directory, so readers never observe a partial file.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
