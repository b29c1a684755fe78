package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	authUsecases "github.com/assistitk12/assistitk12/internal/application/auth/usecases"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

const (
	OAuthStatePrefix = "assistit:oauth:state:"
	OAuthStateTTL    = 10 * time.Minute
)

var (
	_ authUsecases.StateStore = (*RedisStateStore)(nil)
	_ authUsecases.StateStore = (*MemoryStateStore)(nil)
)

type stateInfo struct {
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStateStore keeps OAuth state for the sign-in round trip.
type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStateStore) Save(ctx context.Context, state, codeVerifier string) error {
	if state == "" || codeVerifier == "" {
		return errors.New("state and code_verifier are required")
	}

	data, err := json.Marshal(stateInfo{CodeVerifier: codeVerifier, CreatedAt: biztime.NowUTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal state info: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+state, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in redis: %w", err)
	}
	return nil
}

// Consume uses GETDEL so a state can only be redeemed once.
func (s *RedisStateStore) Consume(ctx context.Context, state string) (string, error) {
	data, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var info stateInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return "", fmt.Errorf("failed to unmarshal state info: %w", err)
	}
	return info.CodeVerifier, nil
}

type MemoryStateStore struct {
	ttl time.Duration

	mu     sync.Mutex
	states map[string]stateInfo
}

func NewMemoryStateStore(ttl time.Duration) *MemoryStateStore {
	return &MemoryStateStore{ttl: ttl, states: make(map[string]stateInfo)}
}

func (s *MemoryStateStore) Save(_ context.Context, state, codeVerifier string) error {
	if state == "" || codeVerifier == "" {
		return errors.New("state and code_verifier are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := biztime.NowUTC()
	for k, v := range s.states {
		if now.Sub(v.CreatedAt) > s.ttl {
			delete(s.states, k)
		}
	}
	s.states[state] = stateInfo{CodeVerifier: codeVerifier, CreatedAt: now}
	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.states[state]
	delete(s.states, state)
	if !ok || biztime.NowUTC().Sub(info.CreatedAt) > s.ttl {
		return "", nil
	}
	return info.CodeVerifier, nil
}
