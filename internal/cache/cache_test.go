// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, queryKeyPrefix+"*").Result()
		keys = append(keys, generationKey)
		client.Del(ctx, keys...)
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	addr := envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(addr, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	if _, err := ConnectValkey("127.0.0.1:1", ""); err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}

func TestKey(t *testing.T) {
	a := Key("contents", []byte(`{"first": 5}`))
	b := Key("contents", []byte(`{"first":5}`))
	if a != b {
		t.Errorf("whitespace changed the key: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "query:contents:") {
		t.Errorf("unexpected key format: %q", a)
	}
	if Key("tags", []byte(`{"first":5}`)) == a {
		t.Error("different operations must not share a key")
	}
	if Key("contents", []byte(`{"first":6}`)) == a {
		t.Error("different variables must not share a key")
	}
	// Invalid JSON still yields a stable key.
	if Key("contents", []byte("{")) != Key("contents", []byte("{")) {
		t.Error("key for invalid JSON is not stable")
	}
}

func TestQueryCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	qc := NewQueryCache(client, time.Minute)
	ctx := context.Background()
	key := Key("tags", nil)

	if data, ok := qc.Get(ctx, key); ok || data != nil {
		t.Fatal("expected cache miss")
	}

	gen, ok := qc.Generation(ctx)
	if !ok {
		t.Fatal("Generation failed")
	}
	body := []byte(`{"data":{"tags":[]}}`)
	qc.Set(ctx, key, body, gen)

	data, ok := qc.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(data) != string(body) {
		t.Errorf("data mismatch: got %q, want %q", data, body)
	}
}

func TestQueryCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	qc := NewQueryCache(client, time.Minute)
	ctx := context.Background()

	keys := []string{Key("tags", nil), Key("categories", nil), Key("contents", []byte(`{"first":1}`))}
	gen, _ := qc.Generation(ctx)
	for _, k := range keys {
		qc.Set(ctx, k, []byte("x"), gen)
	}
	client.Set(ctx, "session:keep-me", "1", time.Minute)
	t.Cleanup(func() { client.Del(ctx, "session:keep-me") })

	qc.InvalidateAll(ctx)

	for _, k := range keys {
		if _, ok := qc.Get(ctx, k); ok {
			t.Errorf("expected miss for %q after InvalidateAll", k)
		}
	}
	if n, _ := client.Exists(ctx, "session:keep-me").Result(); n != 1 {
		t.Error("InvalidateAll must only touch query keys")
	}
}

func TestQueryCacheSetSkippedAfterInvalidation(t *testing.T) {
	client := testValkeyClient(t)
	qc := NewQueryCache(client, time.Minute)
	ctx := context.Background()
	key := Key("contents", []byte(`{"first":3}`))

	// A query starts, a mutation invalidates while it runs, then the
	// query tries to store its now stale result.
	before, ok := qc.Generation(ctx)
	if !ok {
		t.Fatal("Generation failed")
	}
	qc.InvalidateAll(ctx)
	qc.Set(ctx, key, []byte("stale"), before)

	if _, ok := qc.Get(ctx, key); ok {
		t.Fatal("a response computed before an invalidation must not be cached")
	}

	after, _ := qc.Generation(ctx)
	if after != before+1 {
		t.Fatalf("generation: got %d, want %d", after, before+1)
	}
	qc.Set(ctx, key, []byte("fresh"), after)
	if data, ok := qc.Get(ctx, key); !ok || string(data) != "fresh" {
		t.Errorf("expected fresh entry, got %q (hit=%v)", data, ok)
	}
}

func TestNewQueryCacheDefaultTTL(t *testing.T) {
	qc := NewQueryCache(nil, 0)
	if qc.ttl != DefaultQueryTTL {
		t.Errorf("expected DefaultQueryTTL (%v), got %v", DefaultQueryTTL, qc.ttl)
	}
}
