package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter answers whether one more action is allowed for a key.
type Limiter interface {
	// Allow counts one action against the key and reports whether it is
	// within the limit for the window.
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

// FixedWindow is a redis-backed fixed window counter. The first hit in a
// window sets the expiry; every hit increments the counter.
type FixedWindow struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client) *FixedWindow {
	return &FixedWindow{
		client: client,
		prefix: "ratelimit:",
	}
}

func (l *FixedWindow) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	full := l.prefix + key

	count, err := l.client.Incr(ctx, full).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, full, window).Err(); err != nil {
			return false, err
		}
	}

	return count <= limit, nil
}
