// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// searchKeyPrefix namespaces every cached search page.
const searchKeyPrefix = "review:search:"

// SearchCache is a best-effort Redis accelerator for review search pages.
//
// # Correctness
//
// The lifecycle service never depends on this cache: a miss, a stale scan, or
// a Redis outage degrades latency only. Every method swallows Redis errors
// after logging them, and a nil *SearchCache is a valid no-op instance.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSearchCache creates a Redis-backed search cache with the given TTL.
func NewSearchCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SearchCache {
	return &SearchCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// cachedPage is the serialized form of one search result page.
type cachedPage struct {
	Reviews []*Review `json:"reviews"`
	Total   int       `json:"total"`
}

func searchKey(query string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", searchKeyPrefix, query, page, limit)
}

// Get returns a cached search page, or ok=false on miss or any Redis failure.
func (cache *SearchCache) Get(context context.Context, query string, page, limit int) ([]*Review, int, bool) {
	if cache == nil || cache.client == nil {
		return nil, 0, false
	}

	raw, err := cache.client.Get(context, searchKey(query, page, limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("search_cache_get_failed", slog.Any("error", err))
		}
		return nil, 0, false
	}

	var entry cachedPage
	if err := json.Unmarshal(raw, &entry); err != nil {
		cache.logger.Warn("search_cache_decode_failed", slog.Any("error", err))
		return nil, 0, false
	}

	return entry.Reviews, entry.Total, true
}

// Set stores a search page with the configured TTL. Failures are logged and dropped.
func (cache *SearchCache) Set(context context.Context, query string, page, limit int, reviews []*Review, total int) {
	if cache == nil || cache.client == nil {
		return
	}

	raw, err := json.Marshal(cachedPage{Reviews: reviews, Total: total})
	if err != nil {
		cache.logger.Warn("search_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := cache.client.Set(context, searchKey(query, page, limit), raw, cache.ttl).Err(); err != nil {
		cache.logger.Warn("search_cache_set_failed", slog.Any("error", err))
	}
}

// Invalidate drops every cached search page.
//
// Called after any review mutation; iterates the key prefix with SCAN so the
// sweep never blocks Redis the way KEYS would.
func (cache *SearchCache) Invalidate(context context.Context) {
	if cache == nil || cache.client == nil {
		return
	}

	iter := cache.client.Scan(context, 0, searchKeyPrefix+"*", 0).Iterator()
	for iter.Next(context) {
		if err := cache.client.Del(context, iter.Val()).Err(); err != nil {
			cache.logger.Warn("search_cache_del_failed", slog.Any("error", err))
		}
	}

	if err := iter.Err(); err != nil {
		cache.logger.Warn("search_cache_scan_failed", slog.Any("error", err))
	}
}
