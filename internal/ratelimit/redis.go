package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pintudigital/contact-api/pkg/logging"
)

const redisKeyPrefix = "ratelimit:contact:"

// RedisFixedWindow counts requests in Redis so the limit holds across
// instances. The window comes from the key's TTL, set on the first
// increment.
type RedisFixedWindow struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *logging.Logger
}

// NewRedisFixedWindow creates a Redis-backed limiter allowing max requests
// per key within each window.
func NewRedisFixedWindow(client *redis.Client, max int, window time.Duration, logger *logging.Logger) *RedisFixedWindow {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisFixedWindow{
		client: client,
		max:    max,
		window: window,
		logger: logger,
	}
}

// Allow reports whether a request from key fits in the current window.
func (l *RedisFixedWindow) Allow(ctx context.Context, key string) bool {
	redisKey := redisKeyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Error("rate limit check failed", "error", err, "key", redisKey)
		// Fail open - allow the request if Redis is down
		return true
	}

	// Set expiry only on first increment
	if count == 1 {
		l.client.Expire(ctx, redisKey, l.window)
	}

	return count <= int64(l.max)
}

var _ Limiter = (*RedisFixedWindow)(nil)
