// Package ratelimit throttles outbound calls per upstream API.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config is a token-bucket rate.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig matches the Amadeus self-service test tier of 10 requests per second.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		Burst:             10,
	}
}

// Limiter keeps one token bucket per upstream name, created on first use.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

// New creates a Limiter whose buckets default to cfg.
// A non-positive rate disables limiting.
func New(cfg Config) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

// Get returns the bucket for upstream, creating it if needed.
func (l *Limiter) Get(upstream string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[upstream]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok = l.limiters[upstream]; ok {
		return limiter
	}
	limiter = newBucket(l.defaults)
	l.limiters[upstream] = limiter
	return limiter
}

// Set replaces the bucket for upstream.
func (l *Limiter) Set(upstream string, cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[upstream] = newBucket(cfg)
}

// Wait blocks until upstream has a token or ctx is done.
func (l *Limiter) Wait(ctx context.Context, upstream string) error {
	return l.Get(upstream).Wait(ctx)
}

// Allow reports whether upstream has a token available now, consuming it if so.
func (l *Limiter) Allow(upstream string) bool {
	return l.Get(upstream).Allow()
}

func newBucket(cfg Config) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}
