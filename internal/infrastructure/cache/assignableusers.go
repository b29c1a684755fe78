// Package cache holds the redis and in-memory caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
)

const (
	assignableUsersKey        = "assistit:assignable_users"
	DefaultAssignableUsersTTL = 2 * time.Hour
)

var (
	_ directory.AssignableUserCache = (*RedisAssignableUserCache)(nil)
	_ directory.AssignableUserCache = (*MemoryAssignableUserCache)(nil)
)

type RedisAssignableUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAssignableUserCache(client *redis.Client, ttl time.Duration) *RedisAssignableUserCache {
	if ttl <= 0 {
		ttl = DefaultAssignableUsersTTL
	}
	return &RedisAssignableUserCache{client: client, ttl: ttl}
}

func (c *RedisAssignableUserCache) Get(ctx context.Context) ([]directory.AssignableUser, bool, error) {
	data, err := c.client.Get(ctx, assignableUsersKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read assignable users: %w", err)
	}

	var users []directory.AssignableUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal assignable users: %w", err)
	}
	return users, true, nil
}

func (c *RedisAssignableUserCache) Set(ctx context.Context, users []directory.AssignableUser) error {
	if users == nil {
		users = []directory.AssignableUser{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal assignable users: %w", err)
	}
	if err := c.client.Set(ctx, assignableUsersKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store assignable users: %w", err)
	}
	return nil
}

func (c *RedisAssignableUserCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, assignableUsersKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate assignable users: %w", err)
	}
	return nil
}

type MemoryAssignableUserCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	users   []directory.AssignableUser
	expires time.Time
}

func NewMemoryAssignableUserCache(ttl time.Duration) *MemoryAssignableUserCache {
	if ttl <= 0 {
		ttl = DefaultAssignableUsersTTL
	}
	return &MemoryAssignableUserCache{ttl: ttl, now: time.Now}
}

func (c *MemoryAssignableUserCache) Get(context.Context) ([]directory.AssignableUser, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.users == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	out := make([]directory.AssignableUser, len(c.users))
	copy(out, c.users)
	return out, true, nil
}

func (c *MemoryAssignableUserCache) Set(_ context.Context, users []directory.AssignableUser) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = make([]directory.AssignableUser, len(users))
	copy(c.users, users)
	c.expires = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryAssignableUserCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = nil
	return nil
}
