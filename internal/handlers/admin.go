// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tradefx/internal/cache"
	"tradefx/internal/models"
	"tradefx/internal/slug"
	"tradefx/internal/store"
)

// Admin groups the post management endpoints. Every write invalidates the
// response cache since all read endpoints derive from the full collection.
type Admin struct {
	posts     *store.PostStore
	respCache *cache.ResponseCache
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(posts *store.PostStore, respCache *cache.ResponseCache) *Admin {
	return &Admin{posts: posts, respCache: respCache}
}

// postInput is the request body for post create and update. PublishDate
// rejects malformed dates during decoding.
type postInput struct {
	Slug          string      `json:"slug"`
	Title         string      `json:"title"`
	Excerpt       string      `json:"excerpt"`
	Content       string      `json:"content"`
	Category      string      `json:"category"`
	FeaturedImage string      `json:"featuredImage"`
	Author        string      `json:"author"`
	PublishDate   models.Date `json:"publishDate"`
	ReadingTime   int         `json:"readingTime"`
	Featured      bool        `json:"featured"`
}

// decodePost parses and validates the request body. Returns a non-empty
// error message on invalid input.
func decodePost(r *http.Request) (*postInput, string) {
	var in postInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, "invalid request body: " + err.Error()
	}

	if msg := validatePost(in.Title, in.Slug, in.Content, in.Category); msg != "" {
		return nil, msg
	}
	if msg := validatePostMeta(in.Excerpt, in.Author); msg != "" {
		return nil, msg
	}
	if in.PublishDate.IsZero() {
		return nil, "publishDate is required"
	}
	return &in, ""
}

// PostCreate creates a new post. The slug is derived from the title when
// absent, and reading time is estimated from the content when not given.
func (h *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	in, msg := decodePost(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	postSlug := strings.TrimSpace(in.Slug)
	if postSlug == "" {
		postSlug = slug.Unique(in.Title, h.posts.SlugExists)
	} else {
		postSlug = slug.Make(postSlug)
		if h.posts.SlugExists(postSlug) {
			respondError(w, http.StatusConflict, "slug already in use")
			return
		}
	}

	readingTime := in.ReadingTime
	if readingTime <= 0 {
		readingTime = models.EstimateReadingTime(in.Content)
	}

	created, err := h.posts.Create(&models.Post{
		Slug:          postSlug,
		Title:         strings.TrimSpace(in.Title),
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		Category:      in.Category,
		FeaturedImage: in.FeaturedImage,
		Author:        in.Author,
		PublishDate:   in.PublishDate,
		ReadingTime:   readingTime,
		Featured:      in.Featured,
	})
	if err != nil {
		slog.Error("post create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.invalidate(r)
	slog.Info("post created", "id", created.ID, "slug", created.Slug)
	respondJSON(w, http.StatusCreated, map[string]any{"post": created})
}

// PostUpdate replaces an existing post's fields.
func (h *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	existing, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	in, msg := decodePost(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	postSlug := strings.TrimSpace(in.Slug)
	if postSlug == "" {
		postSlug = existing.Slug
	} else {
		postSlug = slug.Make(postSlug)
		if postSlug != existing.Slug && h.posts.SlugExists(postSlug) {
			respondError(w, http.StatusConflict, "slug already in use")
			return
		}
	}

	readingTime := in.ReadingTime
	if readingTime <= 0 {
		readingTime = models.EstimateReadingTime(in.Content)
	}

	updated := &models.Post{
		ID:            id,
		Slug:          postSlug,
		Title:         strings.TrimSpace(in.Title),
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		Category:      in.Category,
		FeaturedImage: in.FeaturedImage,
		Author:        in.Author,
		PublishDate:   in.PublishDate,
		ReadingTime:   readingTime,
		Featured:      in.Featured,
	}
	if err := h.posts.Update(updated); err != nil {
		slog.Error("post update failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	updated.CategoryLabel = models.CategoryLabel(updated.Category)
	h.invalidate(r)
	slog.Info("post updated", "id", id, "slug", postSlug)
	respondJSON(w, http.StatusOK, map[string]any{"post": updated})
}

// PostDelete removes a post.
func (h *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	existing, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	if err := h.posts.Delete(id); err != nil {
		slog.Error("post delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.invalidate(r)
	slog.Info("post deleted", "id", id, "slug", existing.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// invalidate drops all cached read responses after a write.
func (h *Admin) invalidate(r *http.Request) {
	if h.respCache != nil {
		h.respCache.InvalidateAll(r.Context())
	}
}
