package search

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "search:availability"

// RedisClient stores each person's snapshot as a JSON array of epoch
// milliseconds under a single key, which the indexing pipeline reads when it
// rebuilds the person's search record.
type RedisClient struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisClient(rdb *redis.Client, prefix string) *RedisClient {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisClient{rdb: rdb, prefix: prefix}
}

func (c *RedisClient) UpsertAvailability(ctx context.Context, userID string, startTimes []int64) error {
	if startTimes == nil {
		startTimes = []int64{}
	}
	payload, err := json.Marshal(startTimes)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(userID), payload, 0).Err()
}

func (c *RedisClient) DeleteAvailability(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, c.key(userID)).Err()
}

func (c *RedisClient) key(userID string) string {
	return c.prefix + ":" + userID
}
