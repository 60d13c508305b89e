// Package ratelimit 提供按 key 的进程内令牌桶限流
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter defines the interface for rate limiting
type RateLimiter interface {
	// Allow checks if the request is allowed for the given key and limit
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// Limit defines the rate limit rule
type Limit struct {
	Rate   int
	Period time.Duration
	Burst  int
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// 空闲超过该时长的 key 会在下次清理时移除
const idleTTL = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	limit    Limit
	lastSeen time.Time
}

// LocalRateLimiter 每个 key 一个令牌桶，仅在单进程内生效
type LocalRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time
	now       func() time.Time
}

// NewLocalRateLimiter creates a new LocalRateLimiter
func NewLocalRateLimiter() *LocalRateLimiter {
	return &LocalRateLimiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow checks if the request is allowed
func (l *LocalRateLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.entries[key]
	if !ok || e.limit != limit {
		e = &entry{limiter: rate.NewLimiter(every(limit), limit.Burst), limit: limit}
		l.entries[key] = e
	}
	e.lastSeen = now

	r := e.limiter.ReserveN(now, 1)
	if !r.OK() {
		return &Result{Allowed: false}, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return &Result{Allowed: false, RetryAfter: delay}, nil
	}
	return &Result{Allowed: true, Remaining: int(e.limiter.TokensAt(now))}, nil
}

func every(limit Limit) rate.Limit {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return 0
	}
	return rate.Every(limit.Period / time.Duration(limit.Rate))
}

func (l *LocalRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleTTL {
		return
	}
	l.lastSweep = now
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(l.entries, k)
		}
	}
}
