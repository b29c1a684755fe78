package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	authUsecases "github.com/assistitk12/assistitk12/internal/application/auth/usecases"
)

var (
	_ authUsecases.LoginLimiter = (*RedisRateLimiter)(nil)
	_ authUsecases.LoginLimiter = (*MemoryRateLimiter)(nil)
)

// RedisRateLimiter counts hits in a sorted set per key, scored by time, so
// every instance behind the load balancer shares one window.
type RedisRateLimiter struct {
	client *redis.Client
	config Config
}

func NewRedisRateLimiter(client *redis.Client, config Config) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, config: config}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := l.getKey(key)
	windowStart := now.Add(-l.config.Window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, l.config.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}
	return zcard.Val() < int64(l.config.Limit), nil
}

// Reset clears the window for key, e.g. after a successful login.
func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.getKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", identifier, l.config.Window.String())
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 {
		return true, nil
	}
	return l.allow(key), nil
}
