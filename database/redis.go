package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tracker/config"
	"tracker/metrics"

	"github.com/redis/go-redis/v9"
)

var REDIS *redis.Client

// Cache key layout. Every writer invalidates the keys its write makes stale,
// synchronously, before the operation is reported complete.
const (
	CacheKeyFeed                 = "feed:recent"
	CacheKeyUserSessionPrefix    = "user_session:"
	CacheKeyUserSolutionsPrefix  = "solutions:user:"
	CacheKeyProblemSolversPrefix = "solvers:problem:"
)

const cacheTTL = 15 * time.Minute

// InitRedis initializes the redis connection used as the read-through cache
func InitRedis() {
	REDIS = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress,
		Password: config.RedisPassword,
	})

	if err := REDIS.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect redis: ", err)
	}
}

// CacheGet fetches a cached JSON value into dest. Returns false on a miss or
// when no cache is configured (tests run without redis).
func CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if REDIS == nil {
		return false
	}
	raw, err := REDIS.Get(ctx, key).Bytes()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("Failed to decode cached value for %s: %v", key, err)
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

// CacheSet stores a JSON value under key. Failures are logged, never fatal:
// the cache is an optimization, the database stays authoritative.
func CacheSet(ctx context.Context, key string, value interface{}) {
	if REDIS == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to encode value for cache key %s: %v", key, err)
		return
	}
	if err := REDIS.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

// CacheInvalidate drops the given keys after a write touched them
func CacheInvalidate(ctx context.Context, keys ...string) {
	if REDIS == nil || len(keys) == 0 {
		return
	}
	if err := REDIS.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate cache keys %v: %v", keys, err)
	}
}
