// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Package query implements the read-side operations over an in-memory post
// collection: category/search filtering with sorting for listing pages,
// relevance-ranked related posts for detail pages, and the trending ranking
// for the sidebar. All operations are pure; inputs are never mutated.
package query

import (
	"errors"
	"sort"
	"strings"

	"tradefx/internal/models"
	"tradefx/internal/tags"
)

// SortBy selects the ordering for filtered listings.
type SortBy string

const (
	SortRecent      SortBy = "recent"
	SortOldest      SortBy = "oldest"
	SortReadingTime SortBy = "reading-time"
)

// ErrInvalidSort is returned when a sort value outside the recognized enum
// reaches the engine. Callers should reject it at the boundary rather than
// silently reinterpret it.
var ErrInvalidSort = errors.New("invalid sort value")

// Default result limits.
const (
	DefaultRelatedLimit  = 3
	DefaultTrendingLimit = 5
)

// Engine runs queries over post collections. Related-post scoring depends
// on the tag extractor, which is injected so the vocabulary stays
// configurable.
type Engine struct {
	extractor *tags.Extractor
}

// New creates an Engine using the given tag extractor. Passing nil uses an
// extractor over the default vocabulary.
func New(extractor *tags.Extractor) *Engine {
	if extractor == nil {
		extractor = tags.New(nil)
	}
	return &Engine{extractor: extractor}
}

// Query filters posts by category and search text, then sorts them.
//
// Category "all" (or empty) keeps everything; an unknown category yields an
// empty result, not an error. A non-empty search keeps posts where any of
// title, excerpt, content, or category label contains it case-insensitively.
// Sorting is stable: equal keys keep their input order. An empty sortBy
// defaults to recent; anything else unrecognized returns ErrInvalidSort.
func (e *Engine) Query(posts []models.Post, category, search string, sortBy SortBy) ([]models.Post, error) {
	if sortBy == "" {
		sortBy = SortRecent
	}
	switch sortBy {
	case SortRecent, SortOldest, SortReadingTime:
	default:
		return nil, ErrInvalidSort
	}

	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != models.CategoryAll && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}

	if search != "" {
		needle := strings.ToLower(search)
		kept := filtered[:0]
		for _, p := range filtered {
			if containsFold(p.Title, needle) ||
				containsFold(p.Excerpt, needle) ||
				containsFold(p.Content, needle) ||
				containsFold(p.CategoryLabel, needle) {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}

	switch sortBy {
	case SortOldest:
		sort.SliceStable(filtered, func(a, b int) bool {
			return filtered[a].PublishDate.Before(filtered[b].PublishDate)
		})
	case SortReadingTime:
		sort.SliceStable(filtered, func(a, b int) bool {
			return filtered[a].ReadingTime < filtered[b].ReadingTime
		})
	default:
		sort.SliceStable(filtered, func(a, b int) bool {
			return filtered[a].PublishDate.After(filtered[b].PublishDate)
		})
	}

	return filtered, nil
}

// Related ranks candidates by relevance to target: one point per shared
// extracted tag plus two points for a matching category. The target itself
// is excluded by slug. Ranking is stable, so zero-score candidates come
// back in input order and are still returned (up to limit) when nothing
// scores higher.
func (e *Engine) Related(target models.Post, candidates []models.Post, limit int) []models.Post {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	targetTags := e.extractor.Extract(target.Title, target.Content, tags.DefaultPostLimit)
	targetSet := make(map[string]struct{}, len(targetTags))
	for _, tag := range targetTags {
		targetSet[tag] = struct{}{}
	}

	type scored struct {
		post  models.Post
		score int
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.Slug == target.Slug {
			continue
		}

		score := 0
		for _, tag := range e.extractor.Extract(c.Title, c.Content, tags.DefaultPostLimit) {
			if _, ok := targetSet[tag]; ok {
				score++
			}
		}
		if c.Category == target.Category {
			score += 2
		}
		ranked = append(ranked, scored{post: c, score: score})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]models.Post, len(ranked))
	for i, s := range ranked {
		result[i] = s.post
	}
	return result
}

// Trending ranks posts for the sidebar: featured posts first regardless of
// date, then newest first within each group. Stable otherwise.
func (e *Engine) Trending(posts []models.Post, limit int) []models.Post {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	ranked := make([]models.Post, len(posts))
	copy(ranked, posts)

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Featured != ranked[b].Featured {
			return ranked[a].Featured
		}
		return ranked[a].PublishDate.After(ranked[b].PublishDate)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// marketSymbols maps content keywords to TradingView symbol codes, checked
// in order. Used by the detail page's chart widget collaborator.
var marketSymbols = []struct {
	keyword string
	symbol  string
}{
	{"eur/usd", "FOREXCOM:EURUSD"},
	{"eurusd", "FOREXCOM:EURUSD"},
	{"gbp/usd", "FOREXCOM:GBPUSD"},
	{"gbpusd", "FOREXCOM:GBPUSD"},
	{"usd/jpy", "FOREXCOM:USDJPY"},
	{"usdjpy", "FOREXCOM:USDJPY"},
	{"gold", "TVC:GOLD"},
	{"aud", "FOREXCOM:AUDUSD"},
}

// DefaultMarketSymbol is returned when no instrument is mentioned.
const DefaultMarketSymbol = "FOREXCOM:EURUSD"

// MarketSymbol picks the chart symbol most relevant to a post, scanning
// title+content for the first known instrument mention.
func MarketSymbol(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, m := range marketSymbols {
		if strings.Contains(text, m.keyword) {
			return m.symbol
		}
	}
	return DefaultMarketSymbol
}

// containsFold reports whether haystack contains the already-lowercased
// needle, ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
