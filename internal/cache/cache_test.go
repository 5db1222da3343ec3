// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Cache tests require a reachable Valkey instance and are skipped otherwise.
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // Dedicated test DB
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("skipping: valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestResponseCache_SetGet(t *testing.T) {
	rc := NewResponseCache(testClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "posts:all"); ok {
		t.Error("expected miss before set")
	}

	body := []byte(`{"posts":[]}`)
	rc.Set(ctx, "posts:all", body)

	got, ok := rc.Get(ctx, "posts:all")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(got) != string(body) {
		t.Errorf("cached body = %s, want %s", got, body)
	}
}

func TestResponseCache_InvalidateAll(t *testing.T) {
	rc := NewResponseCache(testClient(t), time.Minute)
	ctx := context.Background()

	rc.Set(ctx, "posts:all", []byte("a"))
	rc.Set(ctx, "tags:12", []byte("b"))
	rc.Set(ctx, "trending:5", []byte("c"))

	rc.InvalidateAll(ctx)

	for _, key := range []string{"posts:all", "tags:12", "trending:5"} {
		if _, ok := rc.Get(ctx, key); ok {
			t.Errorf("key %s should be gone after InvalidateAll", key)
		}
	}
}

func TestResponseCache_TTLExpiry(t *testing.T) {
	rc := NewResponseCache(testClient(t), time.Second)
	ctx := context.Background()

	rc.Set(ctx, "short-lived", []byte("x"))
	time.Sleep(1500 * time.Millisecond)

	if _, ok := rc.Get(ctx, "short-lived"); ok {
		t.Error("entry should have expired")
	}
}
