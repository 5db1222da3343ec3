// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post represents a single published article. Posts are immutable value
// records for the duration of any query or rendering call; mutation happens
// only through the store layer.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"categoryLabel"`
	FeaturedImage string    `json:"featuredImage"`
	Author        string    `json:"author"`
	PublishDate   Date      `json:"publishDate"`
	ReadingTime   int       `json:"readingTime"`
	Featured      bool      `json:"featured"`
}

// Category pairs a stable category code with its display label.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryAll is the wildcard pseudo-category meaning "no filter".
// It is valid in query parameters but never stored on a post.
const CategoryAll = "all"

// Categories is the closed set of content classifications, in display order.
// The first entry is the wildcard used by listing pages.
var Categories = []Category{
	{ID: CategoryAll, Label: "All Posts"},
	{ID: "forex", Label: "Forex Markets"},
	{ID: "psychology", Label: "Trading Psychology"},
	{ID: "risk", Label: "Risk Management"},
	{ID: "analysis", Label: "Technical Analysis"},
	{ID: "education", Label: "Education"},
}

// CategoryLabel resolves a category code to its display label.
// Returns empty string for unknown codes.
func CategoryLabel(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Label
		}
	}
	return ""
}

// ValidCategory reports whether id is a real post category.
// The "all" wildcard is not a storable category.
func ValidCategory(id string) bool {
	return id != CategoryAll && CategoryLabel(id) != ""
}

// wordsPerMinute is the fixed reading rate used for estimates.
const wordsPerMinute = 200

// EstimateReadingTime derives reading time in minutes from the content's
// word count, rounded up, with a floor of one minute.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// dateLayout is the wire format for publish dates.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day semantics. It marshals as
// "YYYY-MM-DD" and rejects malformed input at the JSON boundary so a bad
// publish date is attributable to the record that carried it.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("malformed publish date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string, failing on any other shape.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}
