// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Package textrender converts post bodies written in a small fixed markup
// subset into HTML fragments. This is deliberately not a Markdown parser:
// the subset covers headings, blockquotes, bold spans, and flat lists, and
// anything else falls through to plain paragraphs. Nested lists, links,
// code spans, and marker escaping are not supported.
package textrender

import (
	"regexp"
	"strings"
)

// Line-level replacements, applied in order before block splitting.
// Ordered-list items lose their numbering and render as plain list items.
var lineRules = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`(?m)^### (.+)$`), "<h3>$1</h3>"},
	{regexp.MustCompile(`(?m)^## (.+)$`), "<h2>$1</h2>"},
	{regexp.MustCompile(`(?m)^> "(.+)"$`), `<blockquote>"$1"</blockquote>`},
	{regexp.MustCompile(`(?m)^> (.+)$`), "<blockquote>$1</blockquote>"},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`(?m)^- (.+)$`), "<li>$1</li>"},
	{regexp.MustCompile(`(?m)^(\d+)\. (.+)$`), "<li>$2</li>"},
}

// Render converts content into an HTML fragment. It is pure and total:
// content with none of the markup conventions comes back paragraph-wrapped,
// and the same input always produces byte-identical output.
func Render(content string) string {
	for _, rule := range lineRules {
		content = rule.pattern.ReplaceAllString(content, rule.replace)
	}

	blocks := strings.Split(content, "\n\n")
	out := make([]string, 0, len(blocks))

	for _, block := range blocks {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "<h2>"),
			strings.HasPrefix(trimmed, "<h3>"),
			strings.HasPrefix(trimmed, "<blockquote>"):
			out = append(out, trimmed)
		case strings.HasPrefix(trimmed, "<li>"):
			// A run of list items becomes a single list container.
			out = append(out, "<ul>"+strings.ReplaceAll(trimmed, "\n", "")+"</ul>")
		default:
			// Plain paragraph: single newlines inside a block are soft wraps.
			out = append(out, "<p>"+strings.ReplaceAll(trimmed, "\n", " ")+"</p>")
		}
	}

	return strings.Join(out, "\n")
}
