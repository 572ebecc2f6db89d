package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// resultCache is a best-effort JSON cache over Redis for upstream
// responses. A nil client disables it; read and write failures degrade
// to a direct upstream call and are only logged.
type resultCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func newResultCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) resultCache {
	return resultCache{rdb: rdb, ttl: ttl, log: log}
}

func (c resultCache) get(ctx context.Context, key string, out interface{}) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt")
		return false
	}
	return true
}

func (c resultCache) set(ctx context.Context, key string, value interface{}) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func (c resultCache) del(ctx context.Context, keys ...string) {
	if c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Cache invalidation failed")
	}
}
