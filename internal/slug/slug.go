// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make creates a URL-friendly slug from a title.
// Example: "Mastering EUR/USD Breakouts!" → "mastering-eurusd-breakouts"
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// Everything else (punctuation, symbols, non-ASCII) is dropped.
	}

	return strings.TrimRight(b.String(), "-")
}

// Unique returns a slug for title that is not already taken according to
// exists. Collisions get a numeric suffix: "my-post", "my-post-2", ...
// An empty base (title with no usable characters) becomes "post".
func Unique(title string, exists func(slug string) bool) string {
	base := Make(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for n := 2; exists(candidate); n++ {
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return candidate
}
