// Package cache provides an optional Redis-backed read-through cache for
// idempotent API reads, shared across CLI invocations. Every method is
// nil-receiver safe so callers can wire it unconditionally.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "prolearn:"

// Redis caches raw JSON response bodies keyed by request path.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New connects to Redis at url (redis:// form). Returns an error when the
// URL does not parse; connection problems surface lazily as cache misses.
func New(url string, ttl time.Duration, logger zerolog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Redis{
		rdb:    redis.NewClient(opts),
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Logger(),
	}, nil
}

// Get returns the cached bytes for key, if present.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	if r == nil {
		return nil, false
	}
	raw, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.Debug().Err(err).Str("key", key).Msg("cache get failed")
		return nil, false
	}
	return raw, true
}

// Set stores value under key for the configured TTL. Failures are logged and
// swallowed; the cache is best-effort.
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if r == nil {
		return
	}
	if err := r.rdb.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		r.logger.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate drops the given keys.
func (r *Redis) Invalidate(ctx context.Context, keys ...string) {
	if r == nil || len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	if err := r.rdb.Del(ctx, prefixed...).Err(); err != nil {
		r.logger.Debug().Err(err).Msg("cache invalidate failed")
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	if r == nil {
		return nil
	}
	return r.rdb.Close()
}
