// Package ratelimit throttles requests per key over a sliding window.
package ratelimit

import (
	"sync"
	"time"
)

type Config struct {
	Limit  int
	Window time.Duration
}

// PerMinute is the login limiter configuration.
func PerMinute(limit int) Config {
	return Config{Limit: limit, Window: time.Minute}
}

// MemoryRateLimiter keeps hit timestamps per key in process memory. It is
// used when redis is not configured.
type MemoryRateLimiter struct {
	config Config
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewMemoryRateLimiter(config Config) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		config: config,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

func (l *MemoryRateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.config.Window)
	kept := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.config.Limit {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}
