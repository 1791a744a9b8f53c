package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// TokenBucketLimiter implements in-process token bucket rate limiting.
// The limiter is the only cross-request mutable state in the service and
// is internally synchronized.
type TokenBucketLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration
	lastSweep  time.Time
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewTokenBucketLimiter creates a limiter allowing maxTokens requests per window
func NewTokenBucketLimiter(maxTokens int, window time.Duration) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		buckets:    make(map[string]*bucket),
		maxTokens:  maxTokens,
		refillRate: window / time.Duration(maxTokens),
		lastSweep:  time.Now(),
	}
}

// Allow checks if a request for the given key is allowed
func (l *TokenBucketLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{tokens: l.maxTokens, lastRefill: now}
		l.buckets[key] = b
	}

	if refill := int(now.Sub(b.lastRefill) / l.refillRate); refill > 0 {
		b.tokens = min(b.tokens+refill, l.maxTokens)
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// sweep drops buckets idle long enough to be full again
func (l *TokenBucketLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < 5*time.Minute {
		return
	}
	idle := l.refillRate * time.Duration(l.maxTokens)
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) > idle {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// NewIPRateLimiter creates a per-IP limiter (requests per minute)
func NewIPRateLimiter(perMinute int) *TokenBucketLimiter {
	return NewTokenBucketLimiter(perMinute, time.Minute)
}

// NewUserRateLimiter creates a per-user limiter (requests per minute)
func NewUserRateLimiter(perMinute int) *TokenBucketLimiter {
	return NewTokenBucketLimiter(perMinute, time.Minute)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
