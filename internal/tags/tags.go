// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Package tags identifies which terms from a controlled vocabulary appear
// in post text. It powers the per-post tag badges and the site-wide tag
// cloud. Matching is literal, case-insensitive substring containment with
// no word-boundary check: "Trend" matches inside "Trending". That quirk is
// load-bearing for compatibility with existing tag links and must not be
// "fixed" here.
package tags

import (
	"sort"
	"strings"

	"tradefx/internal/models"
)

// Default result limits for the two extraction forms.
const (
	DefaultPostLimit  = 6
	DefaultCloudLimit = 12
)

// defaultVocabulary is the controlled list of forex domain terms, in fixed
// priority order. Order matters: per-post results follow it, and aggregate
// ties break on it.
var defaultVocabulary = []string{
	"EUR/USD", "GBP/USD", "USD/JPY", "AUD/USD", "USD/CHF",
	"Forex", "Currency", "Trading", "Technical Analysis", "Fundamental Analysis",
	"Risk Management", "Psychology", "Candlestick", "Support", "Resistance",
	"Trend", "Breakout", "Volatility", "Leverage", "Hedging",
	"Central Banks", "Interest Rates", "Economic Calendar", "NFP", "GDP",
	"Fibonacci", "Moving Average", "RSI", "MACD", "Bollinger Bands",
	"Stop Loss", "Take Profit", "Position Sizing", "Drawdown", "Pip",
}

// DefaultVocabulary returns a copy of the built-in term list so callers
// can extend it without mutating shared state.
func DefaultVocabulary() []string {
	v := make([]string, len(defaultVocabulary))
	copy(v, defaultVocabulary)
	return v
}

// TagCount pairs a vocabulary term with the number of posts it appears in.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Extractor matches text against an injected vocabulary. The zero value is
// not usable; construct with New.
type Extractor struct {
	vocabulary []string
	lowered    []string
}

// New creates an Extractor over the given vocabulary. Passing nil uses the
// built-in forex term list.
func New(vocabulary []string) *Extractor {
	if vocabulary == nil {
		vocabulary = defaultVocabulary
	}
	lowered := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		lowered[i] = strings.ToLower(term)
	}
	return &Extractor{vocabulary: vocabulary, lowered: lowered}
}

// Extract returns the vocabulary terms found in title+content, in
// vocabulary order, truncated to limit. A limit <= 0 falls back to
// DefaultPostLimit.
func (e *Extractor) Extract(title, content string, limit int) []string {
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	haystack := strings.ToLower(title + " " + content)

	var matched []string
	for i, term := range e.lowered {
		if strings.Contains(haystack, term) {
			matched = append(matched, e.vocabulary[i])
			if len(matched) == limit {
				break
			}
		}
	}
	return matched
}

// Counts returns, for each vocabulary term, the number of distinct posts
// whose title+excerpt+content contains it, sorted descending by count with
// ties broken by vocabulary order. Terms matching no post are omitted.
// A limit <= 0 falls back to DefaultCloudLimit.
func (e *Extractor) Counts(posts []models.Post, limit int) []TagCount {
	if limit <= 0 {
		limit = DefaultCloudLimit
	}

	counts := make([]int, len(e.vocabulary))
	for _, p := range posts {
		haystack := strings.ToLower(p.Title + " " + p.Excerpt + " " + p.Content)
		for i, term := range e.lowered {
			if strings.Contains(haystack, term) {
				counts[i]++
			}
		}
	}

	var result []TagCount
	for i, term := range e.vocabulary {
		if counts[i] > 0 {
			result = append(result, TagCount{Tag: term, Count: counts[i]})
		}
	}

	// Stable sort keeps vocabulary order as the tiebreak for equal counts.
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Count > result[b].Count
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
