package handlers

import (
	"strings"
	"unicode/utf8"

	"tradefx/internal/models"
)

// Validation limits for post fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxContentLen = 100_000
	maxExcerptLen = 1_000
	maxAuthorLen  = 200
)

// validatePost checks post input fields and returns the first error found,
// or "" if the input is valid.
func validatePost(title, slug, content, category string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	if strings.TrimSpace(content) == "" {
		return "content is required"
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "content is too long (max 100,000 characters)"
	}
	if !models.ValidCategory(category) {
		return "invalid category"
	}
	return ""
}

// validatePostMeta checks the optional post fields.
func validatePostMeta(excerpt, author string) string {
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "excerpt is too long (max 1,000 characters)"
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return "author is too long (max 200 characters)"
	}
	return ""
}
