package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock returns a limiter whose clock is advanced by the test
func fakeClock(t *testing.T, cfg RateLimitConfig) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(cfg)
	t.Cleanup(rl.Stop)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Take(t *testing.T) {
	rl, _ := fakeClock(t, RateLimitConfig{Enabled: true, AuthRequestsPerMin: 3})

	for i := 0; i < 3; i++ {
		ok, _ := rl.Take("127.0.0.1")
		assert.True(t, ok, "request %d", i+1)
	}
	ok, wait := rl.Take("127.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, wait)

	ok, _ = rl.Take("10.0.0.2")
	assert.True(t, ok, "clients are counted separately")
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl, now := fakeClock(t, RateLimitConfig{Enabled: true, AuthRequestsPerMin: 1})

	ok, _ := rl.Take("10.0.0.1")
	assert.True(t, ok)

	*now = now.Add(45 * time.Second)
	ok, wait := rl.Take("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 15*time.Second, wait)

	*now = now.Add(15 * time.Second)
	ok, _ = rl.Take("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl, _ := fakeClock(t, RateLimitConfig{Enabled: false, AuthRequestsPerMin: 1})

	for i := 0; i < 50; i++ {
		ok, _ := rl.Take("1.1.1.1")
		assert.True(t, ok)
	}
	assert.Empty(t, rl.buckets)
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl, now := fakeClock(t, RateLimitConfig{Enabled: true, AuthRequestsPerMin: 5})

	rl.Take("old")
	*now = now.Add(30 * time.Second)
	rl.Take("new")
	*now = now.Add(30 * time.Second)

	rl.sweep()

	assert.NotContains(t, rl.buckets, "old")
	assert.Contains(t, rl.buckets, "new")
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 60, retryAfterSeconds(time.Minute))
	assert.Equal(t, 15, retryAfterSeconds(14200*time.Millisecond))
	assert.Equal(t, 1, retryAfterSeconds(0))
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimitConfig())
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
