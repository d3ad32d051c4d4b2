package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const keyPrefix = "index_page__"

// RedisCache keeps cached pages in Redis so every replica sees the same
// window of staleness.
type RedisCache struct {
	redisClient *redis.Client
}

func NewRedisCache(options *redis.Options) *RedisCache {
	return &RedisCache{
		redisClient: redis.NewClient(options),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.redisClient.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Errorf("reading cache key %q: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.redisClient.Set(ctx, c.redisKey(key), value, ttl).Err(); err != nil {
		log.Errorf("writing cache key %q: %s", key, err)
	}
}

func (c *RedisCache) Clear(ctx context.Context) error {
	keys, err := c.redisClient.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redisClient.Del(ctx, keys...).Err()
}

func (c *RedisCache) redisKey(key string) string {
	return fmt.Sprintf("%s%s", keyPrefix, key)
}
