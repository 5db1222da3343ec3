// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tradefx/internal/cache"
	"tradefx/internal/models"
)

// seedCollection inserts a small known collection for read-endpoint tests.
func seedCollection(t *testing.T, env *testEnv) (oldest, middle, featured *models.Post) {
	t.Helper()
	cleanPosts(t, env.DB)

	oldest = seedPost(t, env.PostStore, models.Post{
		Slug:        "eurusd-outlook",
		Title:       "EUR/USD Weekly Outlook",
		Excerpt:     "Support and resistance levels to watch.",
		Content:     "The EUR/USD pair tested key support this week.",
		Category:    "forex",
		PublishDate: models.NewDate(2026, time.January, 5),
		ReadingTime: 4,
	})
	middle = seedPost(t, env.PostStore, models.Post{
		Slug:        "risk-sizing",
		Title:       "Position Sizing Basics",
		Excerpt:     "How much to risk per trade.",
		Content:     "Risk management starts with position sizing and stop loss placement.",
		Category:    "risk",
		PublishDate: models.NewDate(2026, time.February, 10),
		ReadingTime: 2,
	})
	featured = seedPost(t, env.PostStore, models.Post{
		Slug:        "gold-breakout",
		Title:       "Gold Breakout Analysis",
		Excerpt:     "Technical analysis of the gold rally.",
		Content:     "Gold broke above resistance with strong momentum on the daily chart.",
		Category:    "analysis",
		PublishDate: models.NewDate(2026, time.January, 20),
		ReadingTime: 7,
		Featured:    true,
	})
	return oldest, middle, featured
}

// decodePosts unmarshals a {"posts": [...]} response body.
func decodePosts(t *testing.T, rec *httptest.ResponseRecorder) []models.Post {
	t.Helper()
	var body struct {
		Posts []models.Post `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Posts
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewPublic(nil, nil, nil, nil).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want ok status", rec.Body.String())
	}
}

func TestPosts_DefaultSort(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	posts := decodePosts(t, rec)
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	// Most recent first.
	if posts[0].Slug != "risk-sizing" || posts[2].Slug != "eurusd-outlook" {
		t.Errorf("order = [%s %s %s], want newest first", posts[0].Slug, posts[1].Slug, posts[2].Slug)
	}
}

func TestPosts_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts?category=forex", nil))

	posts := decodePosts(t, rec)
	if len(posts) != 1 || posts[0].Slug != "eurusd-outlook" {
		t.Errorf("category filter returned %d posts, want just eurusd-outlook", len(posts))
	}
}

func TestPosts_Search(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts?search=breakout", nil))

	posts := decodePosts(t, rec)
	if len(posts) != 1 || posts[0].Slug != "gold-breakout" {
		t.Errorf("search returned %d posts, want just gold-breakout", len(posts))
	}
}

func TestPosts_SearchNoMatches(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts?search=nonexistent-term-zzz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if posts := decodePosts(t, rec); len(posts) != 0 {
		t.Errorf("got %d posts, want 0", len(posts))
	}
	// Empty result must encode as [], not null.
	if strings.Contains(rec.Body.String(), "null") {
		t.Errorf("body = %q, want empty array", rec.Body.String())
	}
}

func TestPosts_SortReadingTime(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts?sort=reading-time", nil))

	posts := decodePosts(t, rec)
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	if posts[0].Slug != "risk-sizing" || posts[2].Slug != "gold-breakout" {
		t.Errorf("order = [%s %s %s], want shortest first", posts[0].Slug, posts[1].Slug, posts[2].Slug)
	}
}

func TestPosts_InvalidSort(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts?sort=alphabetical", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPostDetail(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB)
	seedPost(t, env.PostStore, models.Post{
		Slug:        "eurusd-levels",
		Title:       "EUR/USD Key Levels",
		Excerpt:     "Levels for the week.",
		Content:     "## Support\n\nThe pair holds above **1.0850** support.",
		Category:    "forex",
		PublishDate: models.NewDate(2026, time.March, 1),
		ReadingTime: 3,
	})

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/posts/eurusd-levels", nil), "slug", "eurusd-levels")
	rec := httptest.NewRecorder()
	env.Public.PostDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Post        models.Post `json:"post"`
		HTML        string      `json:"html"`
		Tags        []string    `json:"tags"`
		ChartSymbol string      `json:"chartSymbol"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.Post.Slug != "eurusd-levels" {
		t.Errorf("post slug = %q, want eurusd-levels", body.Post.Slug)
	}
	if !strings.Contains(body.HTML, "<h2>Support</h2>") || !strings.Contains(body.HTML, "<strong>1.0850</strong>") {
		t.Errorf("html = %q, want rendered headings and bold", body.HTML)
	}
	if len(body.Tags) == 0 || body.Tags[0] != "EUR/USD" {
		t.Errorf("tags = %v, want EUR/USD first", body.Tags)
	}
	if body.ChartSymbol != "FOREXCOM:EURUSD" {
		t.Errorf("chartSymbol = %q, want FOREXCOM:EURUSD", body.ChartSymbol)
	}
}

func TestPostDetail_NotFound(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/posts/no-such-post", nil), "slug", "no-such-post")
	rec := httptest.NewRecorder()
	env.Public.PostDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRelated(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/posts/eurusd-outlook/related", nil), "slug", "eurusd-outlook")
	rec := httptest.NewRecorder()
	env.Public.Related(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	posts := decodePosts(t, rec)
	if len(posts) != 2 {
		t.Fatalf("got %d related posts, want 2", len(posts))
	}
	for _, p := range posts {
		if p.Slug == "eurusd-outlook" {
			t.Error("related posts must exclude the target post")
		}
	}
}

func TestRelated_NotFound(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/posts/missing/related", nil), "slug", "missing")
	rec := httptest.NewRecorder()
	env.Public.Related(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTagCloud(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.TagCloud(rec, httptest.NewRequest(http.MethodGet, "/tags", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Tags []struct {
			Tag   string `json:"tag"`
			Count int    `json:"count"`
		} `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Tags) == 0 {
		t.Fatal("tag cloud is empty")
	}
	for i := 1; i < len(body.Tags); i++ {
		if body.Tags[i].Count > body.Tags[i-1].Count {
			t.Errorf("tags not sorted by count: %v", body.Tags)
		}
	}
}

func TestTrending(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Trending(rec, httptest.NewRequest(http.MethodGet, "/trending", nil))

	posts := decodePosts(t, rec)
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	// The featured post ranks first despite not being the newest.
	if posts[0].Slug != "gold-breakout" {
		t.Errorf("first trending = %q, want gold-breakout", posts[0].Slug)
	}
	if posts[1].Slug != "risk-sizing" {
		t.Errorf("second trending = %q, want risk-sizing (newest non-featured)", posts[1].Slug)
	}
}

func TestTrending_LimitParam(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	rec := httptest.NewRecorder()
	env.Public.Trending(rec, httptest.NewRequest(http.MethodGet, "/trending?limit=1", nil))

	if posts := decodePosts(t, rec); len(posts) != 1 {
		t.Errorf("got %d posts, want 1", len(posts))
	}
}

// TestPosts_CachedResponse verifies that a second identical request is
// served from Valkey and that a write invalidates it.
func TestPosts_CachedResponse(t *testing.T) {
	env := newTestEnv(t)
	seedCollection(t, env)

	respCache := cache.NewResponseCache(env.Valkey, time.Minute)
	respCache.InvalidateAll(context.Background())
	public := NewPublic(env.PostStore, env.Public.engine, env.Public.extractor, respCache)
	admin := NewAdmin(env.PostStore, respCache)

	rec := httptest.NewRecorder()
	public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	first := rec.Body.String()

	rec = httptest.NewRecorder()
	public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	if rec.Body.String() != first {
		t.Error("cached response differs from the original")
	}

	// A delete invalidates the cache; the next read reflects the change.
	target := decodePosts(t, rec)[0]
	req := withChiURLParam(httptest.NewRequest(http.MethodDelete, "/admin/posts/"+target.ID.String(), nil), "id", target.ID.String())
	rec = httptest.NewRecorder()
	admin.PostDelete(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	public.Posts(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	if posts := decodePosts(t, rec); len(posts) != 2 {
		t.Errorf("got %d posts after delete, want 2", len(posts))
	}
}
