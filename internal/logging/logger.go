// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger.
type Options struct {
	Level string
	// File enables rotated file output in addition to the console.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds a text logger writing to console. When opts.File is set the
// records are also written to a rotated log file; if the file cannot be
// prepared the logger falls back to console only and logs a warning.
// The returned closer releases the log file and is never nil.
func New(console io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(console, handlerOpts)
	if opts.File == "" {
		return slog.New(handler), nopCloser{}, nil
	}

	rotator, err := fileOutput(opts)
	if err != nil {
		logger := slog.New(handler)
		logger.Warn("logger_fallback: using console only", "path", opts.File, "error", err)
		return logger, nopCloser{}, nil
	}

	handler = NewTeeHandler(handler, slog.NewTextHandler(rotator, handlerOpts))
	return slog.New(handler), rotator, nil
}

// fileOutput creates the rotated log file writer.
func fileOutput(opts Options) (*lumberjack.Logger, error) {
	dir := filepath.Dir(opts.File)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
