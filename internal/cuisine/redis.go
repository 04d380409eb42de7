// Package cuisine maintains the cuisine → business-id index the worker
// resolves recommendations from. Each cuisine is one Redis Set; SRANDMEMBER
// gives a uniformly random member, so selection quality is Redis's, not ours.
package cuisine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cuisine:"

// RedisIndex is the production index, backed by one Redis Set per cuisine.
type RedisIndex struct {
	rdb *redis.Client
}

func NewRedisIndex(rdb *redis.Client) *RedisIndex {
	return &RedisIndex{rdb: rdb}
}

func indexKey(cuisine string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(cuisine))
}

// RandomByCuisine returns one business id tagged with the cuisine, chosen
// uniformly at random among current members, or ("", nil) when none exist.
func (i *RedisIndex) RandomByCuisine(ctx context.Context, cuisine string) (string, error) {
	// redis/go-redis/v9: SRandMember returns a uniformly random set member.
	id, err := i.rdb.SRandMember(ctx, indexKey(cuisine)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("srandmember %s: %w", cuisine, err)
	}
	return id, nil
}

// Add tags a business id with a cuisine. The offline index loader is the
// expected caller; adding an existing member is a no-op.
func (i *RedisIndex) Add(ctx context.Context, cuisine, businessID string) error {
	if err := i.rdb.SAdd(ctx, indexKey(cuisine), businessID).Err(); err != nil {
		return fmt.Errorf("sadd %s: %w", cuisine, err)
	}
	return nil
}
