package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	MaxAttempts    = 5
	BlockDuration  = 15 * time.Minute
	WindowDuration = 15 * time.Minute
)

// Limiter tracks failed attempts per key (client IP for login).
type Limiter interface {
	// Allow reports whether key may attempt again, and if not, for how long it stays blocked.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type attemptData struct {
	count        int
	firstAttempt time.Time
}

type memoryLimiter struct {
	sync.Mutex
	attempts map[string]*attemptData
	blocked  map[string]time.Time
	now      func() time.Time
}

func NewMemory() Limiter {
	return &memoryLimiter{
		attempts: make(map[string]*attemptData),
		blocked:  make(map[string]time.Time),
		now:      time.Now,
	}
}

func (r *memoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	r.Lock()
	defer r.Unlock()

	if until, ok := r.blocked[key]; ok {
		if now := r.now(); now.Before(until) {
			return false, until.Sub(now), nil
		}
		delete(r.blocked, key)
		delete(r.attempts, key)
	}
	return true, 0, nil
}

func (r *memoryLimiter) RecordFailure(_ context.Context, key string) error {
	r.Lock()
	defer r.Unlock()

	if len(r.attempts) > 10000 {
		r.prune()
	}
	now := r.now()
	data, ok := r.attempts[key]
	if !ok || now.Sub(data.firstAttempt) > WindowDuration {
		data = &attemptData{firstAttempt: now}
		r.attempts[key] = data
	}
	data.count++
	if data.count >= MaxAttempts {
		r.blocked[key] = now.Add(BlockDuration)
	}
	return nil
}

func (r *memoryLimiter) Reset(_ context.Context, key string) error {
	r.Lock()
	defer r.Unlock()
	delete(r.attempts, key)
	delete(r.blocked, key)
	return nil
}

// prune drops expired windows and blocks. Caller holds the lock.
func (r *memoryLimiter) prune() {
	now := r.now()
	for k, a := range r.attempts {
		if now.Sub(a.firstAttempt) > WindowDuration {
			delete(r.attempts, k)
		}
	}
	for k, until := range r.blocked {
		if !now.Before(until) {
			delete(r.blocked, k)
		}
	}
}
