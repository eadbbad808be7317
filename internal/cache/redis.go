package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/osmatch/internal/config"
	"github.com/oggyb/osmatch/internal/domain"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForInterestPairs is a hash of everyone from liked: field is the target id,
// value the like's unix-milli timestamp.
func (c *RedisCache) KeyForInterestPairs(from domain.ProfileID) string {
	return fmt.Sprintf("interest:pairs:%s", from)
}

// KeyForOutgoing is a sorted set of profiles liked by id, scored by timestamp.
func (c *RedisCache) KeyForOutgoing(id domain.ProfileID) string {
	return fmt.Sprintf("interest:out:%s", id)
}

// KeyForIncoming is a sorted set of profiles that liked id, scored by timestamp.
func (c *RedisCache) KeyForIncoming(id domain.ProfileID) string {
	return fmt.Sprintf("interest:in:%s", id)
}
