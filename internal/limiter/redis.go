package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ensure implementation satisfies the interface
var _ Limiter = (*RedisLimiter)(nil)

// RedisLimiter shares the window counters across instances. INCR plus a TTL
// set on the first hit gives the same fixed-window semantics as the memory
// limiter.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func NewRedisLimiter(client *redis.Client, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{client: client, window: window, max: max}
}

func (l *RedisLimiter) Admit(ctx context.Context, clientKey string) (bool, error) {
	key := "ratelimit:" + clientKey

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit counter increment failed: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit window expiry failed: %w", err)
		}
	}
	return count <= int64(l.max), nil
}
