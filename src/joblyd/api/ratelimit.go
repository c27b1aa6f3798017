package api

import (
	"math"
	"sync"
	"time"
)

// RateLimitConfig configures throttling of the /auth endpoints
type RateLimitConfig struct {
	Enabled bool
	// AuthRequestsPerMin is how many token or registration requests one
	// client IP may make per window.
	AuthRequestsPerMin int
	// TrustProxy lets gin derive the client IP from X-Forwarded-For.
	TrustProxy bool
}

// DefaultRateLimitConfig returns the limits used when none are configured
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:            true,
		AuthRequestsPerMin: 10,
	}
}

const (
	authWindow = time.Minute
	sweepEvery = 5 * time.Minute
)

type bucket struct {
	used  int
	reset time.Time
}

// RateLimiter counts requests per client in fixed windows. A client's
// window opens with its first request and resets authWindow later.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing cfg.AuthRequestsPerMin requests
// per client and window, and starts sweeping expired windows.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		limit:   cfg.AuthRequestsPerMin,
		window:  authWindow,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	if !cfg.Enabled {
		rl.limit = 0
	}
	go rl.sweepLoop()
	return rl
}

// Take records one request from client. When the client is over its limit
// the request is not counted and the time until its window resets is
// returned.
func (rl *RateLimiter) Take(client string) (bool, time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}

	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b := rl.buckets[client]
	if b == nil || !now.Before(b.reset) {
		rl.buckets[client] = &bucket{used: 1, reset: now.Add(rl.window)}
		return true, 0
	}
	if b.used >= rl.limit {
		return false, b.reset.Sub(now)
	}
	b.used++
	return true, 0
}

// retryAfterSeconds rounds a wait up to whole seconds for the Retry-After header
func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func (rl *RateLimiter) sweep() {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, b := range rl.buckets {
		if !now.Before(b.reset) {
			delete(rl.buckets, client)
		}
	}
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// Stop ends the sweeper. Calling it again is a no-op.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}
