package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/muzz-match/internal/config"
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

// KeyForVoteRate generates Redis key for a voter's rate-limit window
func (c *RedisCache) KeyForVoteRate(userID uint64) string {
	return fmt.Sprintf("votes:rate:%d", userID)
}

// IncrementWindow bumps the fixed-window counter at key and returns the new
// count with the time left in the window. The TTL is set on the first hit only,
// so the window does not slide.
func (c *RedisCache) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if key == "" || window <= 0 {
		return 0, 0, fmt.Errorf("invalid rate window payload")
	}

	count, err := c.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("increment rate key: %w", err)
	}
	if count == 1 {
		if err := c.Client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("set rate key ttl: %w", err)
		}
	}

	ttl, err := c.Client.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("read rate key ttl: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}

	return count, ttl, nil
}

// AllowVote counts one vote for userID and reports whether it stays within
// limit votes per window. retryAfter is only meaningful when allowed is false.
// A limit <= 0 disables the check.
func (c *RedisCache) AllowVote(ctx context.Context, userID uint64, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error) {
	if limit <= 0 {
		return true, 0, nil
	}

	count, ttl, err := c.IncrementWindow(ctx, c.KeyForVoteRate(userID), window)
	if err != nil {
		return false, 0, err
	}
	return count <= int64(limit), ttl, nil
}
