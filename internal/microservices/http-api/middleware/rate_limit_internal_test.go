package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_DropsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.limiter("10.0.0.1")
	rl.limiter("10.0.0.2")
	assert.Equal(t, 2, rl.Len())

	now = now.Add(defaultIdleTTL / 2)
	rl.limiter("10.0.0.2")

	now = now.Add(defaultIdleTTL/2 + time.Second)
	rl.limiter("10.0.0.3")

	// .1 was idle past the TTL, .2 was seen half a TTL ago
	assert.Equal(t, 2, rl.Len())
	_, kept := rl.visitors["10.0.0.2"]
	_, dropped := rl.visitors["10.0.0.1"]
	assert.True(t, kept)
	assert.False(t, dropped)
}

func TestRateLimiter_ReturnsSameBucketForKey(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	assert.Same(t, rl.limiter("a"), rl.limiter("a"))
}
