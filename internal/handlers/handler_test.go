// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"tradefx/internal/database"
	"tradefx/internal/middleware"
	"tradefx/internal/models"
	"tradefx/internal/query"
	"tradefx/internal/session"
	"tradefx/internal/store"
	"tradefx/internal/tags"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "tradefx")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "tradefx")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "resp:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests. The
// response cache is left nil so reads stay deterministic; caching has its
// own dedicated test.
type testEnv struct {
	DB        *sql.DB
	Valkey    *redis.Client
	Sessions  *session.Store
	PostStore *store.PostStore
	UserStore *store.UserStore
	Public    *Public
	Admin     *Admin
	Auth      *Auth
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	postStore := store.NewPostStore(db)
	userStore := store.NewUserStore(db)

	extractor := tags.New(nil)
	engine := query.New(extractor)

	return &testEnv{
		DB:        db,
		Valkey:    vk,
		Sessions:  sessions,
		PostStore: postStore,
		UserStore: userStore,
		Public:    NewPublic(postStore, engine, extractor, nil),
		Admin:     NewAdmin(postStore, nil),
		Auth:      NewAuth(sessions, userStore),
	}
}

// cleanPosts removes all posts so each test starts from a known collection.
func cleanPosts(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM posts"); err != nil {
		t.Fatalf("clean posts: %v", err)
	}
}

// cleanUsers removes test users by email prefix.
func cleanUsers(t *testing.T, db *sql.DB, prefix string) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM users WHERE email LIKE $1", prefix+"%"); err != nil {
		t.Fatalf("clean users: %v", err)
	}
}

// seedPost inserts a post for read-endpoint tests.
func seedPost(t *testing.T, ps *store.PostStore, p models.Post) *models.Post {
	t.Helper()
	if p.Author == "" {
		p.Author = "Test Author"
	}
	if p.ReadingTime == 0 {
		p.ReadingTime = 1
	}
	created, err := ps.Create(&p)
	if err != nil {
		t.Fatalf("seed post %q: %v", p.Slug, err)
	}
	return created
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
