// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown converts plugin descriptions. goldmark omits raw HTML by default;
// the output is sanitized again before display.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// htmlSanitizer strips anything outside bluemonday's UGC policy.
var htmlSanitizer = bluemonday.UGCPolicy()

// Markdown converts src to sanitized HTML.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}

// MarkdownHTML is the template form of Markdown. On conversion failure the
// escaped source is shown instead.
func MarkdownHTML(src string) template.HTML {
	out, err := Markdown(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src)) //nolint:gosec // escaped
	}
	return out
}
