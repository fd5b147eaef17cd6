// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
)

// fragmentWriter buffers the response of a route component so that HTML
// fragments can be framed by the page layout.
type fragmentWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newFragmentWriter() *fragmentWriter {
	return &fragmentWriter{header: make(http.Header)}
}

func (f *fragmentWriter) Header() http.Header {
	return f.header
}

func (f *fragmentWriter) WriteHeader(status int) {
	if f.status == 0 {
		f.status = status
	}
}

func (f *fragmentWriter) Write(p []byte) (int, error) {
	if f.status == 0 {
		f.status = http.StatusOK
	}
	return f.body.Write(p)
}

// Status returns the written status, http.StatusOK if none was written.
func (f *fragmentWriter) Status() int {
	if f.status == 0 {
		return http.StatusOK
	}
	return f.status
}

// IsFragment reports whether the component produced an HTML fragment that
// should be placed in the layout: a 200 response that is HTML or untyped.
func (f *fragmentWriter) IsFragment() bool {
	if f.Status() != http.StatusOK {
		return false
	}
	ct := f.header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "text/html")
}

// Fragment returns the buffered body as HTML. Components are trusted code
// compiled into the binary.
func (f *fragmentWriter) Fragment() template.HTML {
	return template.HTML(f.body.String()) //nolint:gosec // trusted component output
}

// CopyHeaders copies the component headers to w, except the ones describing
// the body when it is re-framed.
func (f *fragmentWriter) CopyHeaders(w http.ResponseWriter, framed bool) {
	for k, v := range f.header {
		if framed && (k == "Content-Type" || k == "Content-Length") {
			continue
		}
		w.Header()[k] = v
	}
}

// PassThrough writes the buffered response to w unchanged.
func (f *fragmentWriter) PassThrough(w http.ResponseWriter) {
	f.CopyHeaders(w, false)
	w.WriteHeader(f.Status())
	_, _ = f.body.WriteTo(w)
}
