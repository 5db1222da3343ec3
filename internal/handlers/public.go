// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tradefx/internal/cache"
	"tradefx/internal/metrics"
	"tradefx/internal/models"
	"tradefx/internal/query"
	"tradefx/internal/store"
	"tradefx/internal/tags"
	"tradefx/internal/textrender"
)

// Public groups the read-only endpoints consumed by the blog frontend.
// Listing, tag cloud, and trending responses are cached in Valkey because
// they recompute pure functions over the full collection on every request.
type Public struct {
	posts     *store.PostStore
	engine    *query.Engine
	extractor *tags.Extractor
	respCache *cache.ResponseCache
}

// NewPublic creates a new Public handler group. respCache may be nil, in
// which case responses are computed on every request.
func NewPublic(posts *store.PostStore, engine *query.Engine, extractor *tags.Extractor, respCache *cache.ResponseCache) *Public {
	return &Public{
		posts:     posts,
		engine:    engine,
		extractor: extractor,
		respCache: respCache,
	}
}

// Health reports service liveness.
func (h *Public) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Posts lists posts filtered by category and search text, sorted per the
// sort parameter. Unknown sort values are rejected with 400.
func (h *Public) Posts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")
	sortBy := query.SortBy(r.URL.Query().Get("sort"))

	cacheKey := fmt.Sprintf("posts:%s:%s:%s", category, search, sortBy)
	if h.serveCached(w, r, "posts", cacheKey) {
		return
	}

	all, err := h.posts.List()
	if err != nil {
		slog.Error("post list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	filtered, err := h.engine.Query(all, category, search, sortBy)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sort value")
		return
	}

	h.respond(w, r, "posts", cacheKey, map[string]any{"posts": emptyPosts(filtered)})
}

// PostDetail returns one post by slug together with its rendered HTML,
// extracted tags, and the chart symbol for the market widget.
func (h *Public) PostDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.FindBySlug(slug)
	if err != nil {
		slog.Error("post lookup failed", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	postTags := h.extractor.Extract(post.Title, post.Content, tags.DefaultPostLimit)
	if postTags == nil {
		postTags = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"post":        post,
		"html":        textrender.Render(post.Content),
		"tags":        postTags,
		"chartSymbol": query.MarketSymbol(post.Title, post.Content),
	})
}

// Related returns posts ranked by relevance to the post with the given slug.
func (h *Public) Related(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	limit := limitParam(r, query.DefaultRelatedLimit)

	post, err := h.posts.FindBySlug(slug)
	if err != nil {
		slog.Error("post lookup failed", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	all, err := h.posts.List()
	if err != nil {
		slog.Error("post list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	related := h.engine.Related(*post, all, limit)
	respondJSON(w, http.StatusOK, map[string]any{"posts": emptyPosts(related)})
}

// TagCloud returns vocabulary terms with the number of posts mentioning
// each, most-mentioned first.
func (h *Public) TagCloud(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, tags.DefaultCloudLimit)

	cacheKey := fmt.Sprintf("tags:%d", limit)
	if h.serveCached(w, r, "tags", cacheKey) {
		return
	}

	all, err := h.posts.List()
	if err != nil {
		slog.Error("post list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	counts := h.extractor.Counts(all, limit)
	if counts == nil {
		counts = []tags.TagCount{}
	}
	h.respond(w, r, "tags", cacheKey, map[string]any{"tags": counts})
}

// Trending returns the sidebar ranking: featured posts first, newest first
// within each group.
func (h *Public) Trending(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, query.DefaultTrendingLimit)

	cacheKey := fmt.Sprintf("trending:%d", limit)
	if h.serveCached(w, r, "trending", cacheKey) {
		return
	}

	all, err := h.posts.List()
	if err != nil {
		slog.Error("post list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	trending := h.engine.Trending(all, limit)
	h.respond(w, r, "trending", cacheKey, map[string]any{"posts": emptyPosts(trending)})
}

// serveCached writes the cached response for key if one exists. Records
// cache hit/miss metrics per endpoint.
func (h *Public) serveCached(w http.ResponseWriter, r *http.Request, endpoint, key string) bool {
	if h.respCache == nil {
		return false
	}
	body, ok := h.respCache.Get(r.Context(), key)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(endpoint).Inc()
		return false
	}
	metrics.CacheHitsTotal.WithLabelValues(endpoint).Inc()
	writeJSON(w, http.StatusOK, body)
	return true
}

// respond encodes v, stores it under key for subsequent requests, and
// writes it as the response.
func (h *Public) respond(w http.ResponseWriter, r *http.Request, endpoint, key string, v any) {
	body, err := marshalJSON(v)
	if err != nil {
		slog.Error("response encode failed", "endpoint", endpoint, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if h.respCache != nil {
		h.respCache.Set(r.Context(), key, body)
	}
	writeJSON(w, http.StatusOK, body)
}

// limitParam parses the limit query parameter, falling back to def when the
// parameter is absent or not a positive integer.
func limitParam(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// emptyPosts avoids `"posts": null` in responses when a filter matches
// nothing.
func emptyPosts(posts []models.Post) []models.Post {
	if posts == nil {
		return []models.Post{}
	}
	return posts
}
