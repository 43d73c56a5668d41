package middleware

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock and no
// background sweep.
func newTestLimiter(maxAttempts int, window time.Duration, start time.Time) (*PinRateLimiter, *time.Time) {
	current := start
	rl := &PinRateLimiter{
		entries:     make(map[string]rateLimitEntry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         func() time.Time { return current },
		stop:        make(chan struct{}),
	}
	return rl, &current
}

func TestPinRateLimiter_ConsumesBudget(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, _ := newTestLimiter(5, 10*time.Minute, start)

	for i := 0; i < 5; i++ {
		result := rl.CheckAndConsume("1.2.3.4")
		assert.True(t, result.Allowed, "attempt %d should be allowed", i+1)
		assert.Equal(t, 4-i, result.Remaining, "attempt %d remaining", i+1)
		assert.Equal(t, start.Add(10*time.Minute), result.ResetTime)
	}

	result := rl.CheckAndConsume("1.2.3.4")
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, start.Add(10*time.Minute), result.ResetTime)
}

func TestPinRateLimiter_WindowExpiryRestoresFullBudget(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, clock := newTestLimiter(5, 10*time.Minute, start)

	for i := 0; i < 6; i++ {
		rl.CheckAndConsume("1.2.3.4")
	}
	require.False(t, rl.CheckAndConsume("1.2.3.4").Allowed)

	// Move past the window end; the next attempt starts a fresh window
	// with the full budget, not a partial one.
	*clock = start.Add(10*time.Minute + time.Second)

	result := rl.CheckAndConsume("1.2.3.4")
	assert.True(t, result.Allowed)
	assert.Equal(t, 4, result.Remaining)
	assert.Equal(t, (*clock).Add(10*time.Minute), result.ResetTime)
}

func TestPinRateLimiter_KeysAreIndependent(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, _ := newTestLimiter(5, 10*time.Minute, start)

	for i := 0; i < 6; i++ {
		rl.CheckAndConsume("1.2.3.4")
	}
	require.False(t, rl.CheckAndConsume("1.2.3.4").Allowed)

	result := rl.CheckAndConsume("5.6.7.8")
	assert.True(t, result.Allowed)
	assert.Equal(t, 4, result.Remaining)
}

func TestPinRateLimiter_EmptyKeySharesUnknownBucket(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, _ := newTestLimiter(5, 10*time.Minute, start)

	first := rl.CheckAndConsume("")
	second := rl.CheckAndConsume(UnknownClientKey)

	assert.Equal(t, 4, first.Remaining)
	assert.Equal(t, 3, second.Remaining)
}

func TestPinRateLimiter_Reset(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, _ := newTestLimiter(5, 10*time.Minute, start)

	for i := 0; i < 6; i++ {
		rl.CheckAndConsume("1.2.3.4")
	}
	require.False(t, rl.CheckAndConsume("1.2.3.4").Allowed)

	rl.Reset()

	result := rl.CheckAndConsume("1.2.3.4")
	assert.True(t, result.Allowed)
	assert.Equal(t, 4, result.Remaining)
}

func TestPinRateLimiter_RemoveExpired(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, clock := newTestLimiter(5, 10*time.Minute, start)

	rl.CheckAndConsume("1.2.3.4")
	rl.CheckAndConsume("5.6.7.8")

	*clock = start.Add(11 * time.Minute)
	rl.CheckAndConsume("9.9.9.9")

	rl.removeExpired()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.entries, "1.2.3.4")
	assert.NotContains(t, rl.entries, "5.6.7.8")
	assert.Contains(t, rl.entries, "9.9.9.9")
}

func TestPinRateLimiter_ConcurrentConsume(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, _ := newTestLimiter(5, 10*time.Minute, start)

	var wg sync.WaitGroup
	allowed := make([]bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			allowed[i] = rl.CheckAndConsume("1.2.3.4").Allowed
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 5, count)
}

func TestPinRateLimiter_StopTerminatesSweep(t *testing.T) {
	rl := NewPinRateLimiter(5, 10*time.Minute)
	rl.Stop()
	// Stopping twice would panic on a closed channel; one call must be
	// enough and must not block.
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "forwarded-for takes precedence",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "real-ip fallback",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "203.0.113.11:5678",
			want:       "203.0.113.11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/events/verify-pin", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientKey(r))
		})
	}
}
