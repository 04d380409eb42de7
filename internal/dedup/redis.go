// Package dedup tracks processed request ids so a redelivered queue message
// sends at most one email. SETNX is the atomic check-and-insert: exactly one
// of two racing workers observes "first".
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "processed:"

// RedisSet remembers request ids in Redis with a TTL. Exact membership is
// required here, not a Bloom filter: a false positive would silently drop a
// legitimate recommendation.
type RedisSet struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSet(rdb *redis.Client, ttl time.Duration) *RedisSet {
	return &RedisSet{rdb: rdb, ttl: ttl}
}

// Seen marks the request id processed and reports whether it already was.
// The insert and the check are one atomic SETNX.
func (s *RedisSet) Seen(ctx context.Context, requestID string) (bool, error) {
	set, err := s.rdb.SetNX(ctx, keyPrefix+requestID, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx %s: %w", requestID, err)
	}
	return !set, nil
}
