// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging sets up the application slog logger. Records always go to
// the console handler and, when a log file is configured, are also written
// to a size-rotated file.
package logging

import (
	"context"
	"errors"
	"log/slog"
)

// TeeHandler is a slog.Handler that wraps another handler and also writes
// records at or above a minimum level to a secondary sink handler.
type TeeHandler struct {
	inner slog.Handler
	sink  slog.Handler
	level slog.Level // Minimum level forwarded to sink
}

// NewTeeHandler creates a TeeHandler that forwards every record the sink
// accepts.
func NewTeeHandler(inner, sink slog.Handler) *TeeHandler {
	return NewTeeHandlerWithLevel(inner, sink, slog.LevelDebug)
}

// NewTeeHandlerWithLevel creates a TeeHandler with a custom minimum sink level.
func NewTeeHandlerWithLevel(inner, sink slog.Handler, level slog.Level) *TeeHandler {
	return &TeeHandler{
		inner: inner,
		sink:  sink,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || h.sinkEnabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	if h.sinkEnabled(ctx, r.Level) {
		if err := h.sink.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TeeHandler{
		inner: h.inner.WithAttrs(attrs),
		sink:  h.sink.WithAttrs(attrs),
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *TeeHandler) WithGroup(name string) slog.Handler {
	return &TeeHandler{
		inner: h.inner.WithGroup(name),
		sink:  h.sink.WithGroup(name),
		level: h.level,
	}
}

func (h *TeeHandler) sinkEnabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level && h.sink.Enabled(ctx, level)
}
