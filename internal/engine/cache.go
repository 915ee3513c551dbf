package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// gatewayCache holds gateway responses (metadata, transcripts) in two tiers:
// an in-process LRU with TTL, and Redis when configured. nil disables caching.
var gatewayCache *tieredCache

var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

type tieredCache struct {
	l1  *expirable.LRU[string, []byte]
	rdb *redis.Client // nil if Redis unavailable
	ttl time.Duration
}

// InitCache sets up the 2-tier cache. Call after Init().
// redisURL can be empty to disable L2. maxEntries <= 0 leaves L1 unbounded.
func InitCache(redisURL string, ttl time.Duration, maxEntries int) {
	if maxEntries < 0 {
		maxEntries = 0
	}
	c := &tieredCache{
		l1:  expirable.NewLRU[string, []byte](maxEntries, nil, ttl),
		ttl: ttl,
	}
	c.rdb = connectRedis(redisURL)

	gatewayCache = c
	slog.Info("cache: initialized", slog.Duration("ttl", ttl), slog.Bool("redis", c.rdb != nil), slog.Int("max_entries", maxEntries))
}

func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		return nil
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
		_ = rdb.Close()
		return nil
	}
	slog.Info("cache: L2 redis connected", slog.String("addr", opts.Addr))
	return rdb
}

// CacheKey builds a deterministic cache key from parts.
func CacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("yc:%x", hash[:12])
}

// CacheGet tries L1, then L2. An L2 hit is promoted to L1.
func CacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, ok := gatewayCache.get(ctx, key)
	if ok {
		cacheHits.Add(1)
	} else {
		cacheMisses.Add(1)
	}
	return data, ok
}

// CacheSet stores data in both tiers.
func CacheSet(ctx context.Context, key string, data []byte) {
	gatewayCache.set(ctx, key, data)
}

// CacheStats returns current cache hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

func (c *tieredCache) get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	if data, ok := c.l1.Get(key); ok {
		slog.Debug("cache: L1 hit", slog.String("key", key))
		return data, true
	}
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Debug("cache: L2 get failed", slog.Any("error", err))
		}
		return nil, false
	}
	slog.Debug("cache: L2 hit", slog.String("key", key))
	c.l1.Add(key, data)
	return data, true
}

func (c *tieredCache) set(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}
	c.l1.Add(key, data)
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Debug("cache: L2 set failed", slog.Any("error", err))
	}
}
