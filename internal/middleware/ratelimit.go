package middleware

import (
	"net/http"
	"sync"
	"time"
)

// UnknownClientKey is the shared bucket used when no client IP can be
// determined. All unidentified clients then share one budget; a known
// limitation of the scheme.
const UnknownClientKey = "unknown"

// RateLimitResult is the outcome of consuming one attempt from the budget.
// ResetTime is the absolute time the current window ends.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// PinRateLimiter throttles PIN verification attempts per client key using a
// fixed window. It guards only the PIN endpoint: the access token is long
// and random, while a 4-digit PIN has 10,000 possibilities and is the part
// worth throttling. State is in-memory only and lost on restart, which is
// acceptable for a deterrence mechanism.
type PinRateLimiter struct {
	mu          sync.Mutex
	entries     map[string]rateLimitEntry
	maxAttempts int
	window      time.Duration

	// now is replaceable in tests so windows can be moved without sleeping.
	now  func() time.Time
	stop chan struct{}
}

// NewPinRateLimiter creates a rate limiter and starts its background sweep.
func NewPinRateLimiter(maxAttempts int, window time.Duration) *PinRateLimiter {
	rl := &PinRateLimiter{
		entries:     make(map[string]rateLimitEntry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	go rl.sweep()

	return rl
}

// CheckAndConsume spends one attempt for the given client key. The first
// attempt for a key, or the first after the window has elapsed, starts a
// fresh window. Once the budget is spent the key stays blocked until the
// window ends; there is no partial reset.
func (rl *PinRateLimiter) CheckAndConsume(key string) RateLimitResult {
	if key == "" {
		key = UnknownClientKey
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.entries[key]

	if !ok || now.After(entry.resetTime) {
		// New window or the previous one has elapsed
		entry = rateLimitEntry{count: 1, resetTime: now.Add(rl.window)}
		rl.entries[key] = entry
		return RateLimitResult{
			Allowed:   true,
			Remaining: rl.maxAttempts - 1,
			ResetTime: entry.resetTime,
		}
	}

	if entry.count >= rl.maxAttempts {
		return RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetTime: entry.resetTime,
		}
	}

	entry.count++
	rl.entries[key] = entry

	return RateLimitResult{
		Allowed:   true,
		Remaining: rl.maxAttempts - entry.count,
		ResetTime: entry.resetTime,
	}
}

// Reset clears all tracked keys immediately.
func (rl *PinRateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]rateLimitEntry)
}

// Stop terminates the background sweep goroutine.
func (rl *PinRateLimiter) Stop() {
	close(rl.stop)
}

// sweep drops entries whose window has elapsed, once per window. Purely
// memory hygiene: CheckAndConsume restarts elapsed windows on its own.
func (rl *PinRateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeExpired()
		case <-rl.stop:
			return
		}
	}
}

func (rl *PinRateLimiter) removeExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}

// ClientKey extracts the rate limiting key for a request: the client IP
// from proxy headers, falling back to the shared unknown bucket.
func ClientKey(r *http.Request) string {
	if ip := getClientIP(r); ip != "" {
		return ip
	}
	return UnknownClientKey
}
