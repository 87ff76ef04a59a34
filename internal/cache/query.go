// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// query.go caches the encoded responses of side-effect-free queries.
// Entries are keyed by operation name and a hash of the variables, and
// the whole keyspace is dropped after any successful mutation. Every
// drop also bumps a generation counter; a response computed under an
// older generation is never stored.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// queryKeyPrefix is the Valkey key prefix for cached query responses.
	queryKeyPrefix = "query:"

	// generationKey counts invalidations. It sits outside queryKeyPrefix
	// so InvalidateAll never deletes it.
	generationKey = "querygen"

	// DefaultQueryTTL is how long a query response stays cached.
	DefaultQueryTTL = 30 * time.Second
)

// QueryCache stores query responses in Valkey.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache creates a query cache backed by the given Valkey client.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = DefaultQueryTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

// Key returns the cache key of an operation called with the given JSON
// variables. Insignificant whitespace in variables does not change the key.
func Key(op string, variables []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, variables); err != nil {
		buf.Reset()
		buf.Write(variables)
	}
	sum := sha256.Sum256(buf.Bytes())
	return queryKeyPrefix + op + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached response stored under key.
func (qc *QueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := qc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("query cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("query cache hit", "key", key)
	return val, true
}

// setIfGeneration stores ARGV[2] under KEYS[2] for ARGV[3] milliseconds
// only while the counter in KEYS[1] still equals ARGV[1].
var setIfGeneration = redis.NewScript(`
	local gen = redis.call("GET", KEYS[1]) or "0"
	if gen ~= ARGV[1] then
		return 0
	end
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
	return 1
`)

// Generation returns the current invalidation generation. Read it before
// running a query and pass it to Set. ok is false when Valkey could not
// be read, in which case the response must not be cached.
func (qc *QueryCache) Generation(ctx context.Context) (gen int64, ok bool) {
	gen, err := qc.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("query cache generation error", "error", err)
		return 0, false
	}
	return gen, true
}

// Set stores a response under key with the configured TTL, unless an
// invalidation happened since gen was read.
func (qc *QueryCache) Set(ctx context.Context, key string, body []byte, gen int64) {
	stored, err := setIfGeneration.Run(ctx, qc.client,
		[]string{generationKey, key},
		strconv.FormatInt(gen, 10), body, qc.ttl.Milliseconds(),
	).Int()
	if err != nil {
		slog.Warn("query cache set error", "key", key, "error", err)
		return
	}
	if stored == 0 {
		slog.Debug("query cache set skipped, invalidated meanwhile", "key", key)
	}
}

// InvalidateAll bumps the generation and removes every cached query
// response by scanning for the prefix. Failures are logged; stale entries
// still expire with the TTL.
func (qc *QueryCache) InvalidateAll(ctx context.Context) {
	if err := qc.client.Incr(ctx, generationKey).Err(); err != nil {
		slog.Warn("query cache generation bump error", "error", err)
	}

	var cursor uint64
	var deleted int
	for {
		keys, next, err := qc.client.Scan(ctx, cursor, queryKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("query cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := qc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("query cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("query cache cleared", "deleted", deleted)
	}
}
