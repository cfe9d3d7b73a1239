package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/M3lvz/toolsorter/internal/utils"
)

// RateLimitConfig tunes the per-IP token bucket. A zero Burst disables
// the limiter entirely, so unconfigured deployments are not throttled.
type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool
}

// bucket is one client's token state. Guarded by throttle.mu.
type bucket struct {
	tokens   float64
	refilled time.Time
	seen     time.Time
}

// throttle holds every client bucket behind one lock.
type throttle struct {
	cfg      RateLimitConfig
	perSec   float64
	capacity float64

	mu      sync.Mutex
	buckets map[string]*bucket
	swept   time.Time
}

func newThrottle(cfg RateLimitConfig) *throttle {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.RefillPerIPPerMin < 1 {
		cfg.RefillPerIPPerMin = 1
	}
	return &throttle{
		cfg:      cfg,
		perSec:   float64(cfg.RefillPerIPPerMin) / 60.0,
		capacity: float64(cfg.Burst),
		buckets:  make(map[string]*bucket),
		swept:    time.Now(),
	}
}

// take spends one token for key. When the bucket is empty it reports
// how many seconds until the next token accrues. Denied hits still
// count as activity, otherwise a hammering client would get its bucket
// swept and come back with a full burst.
func (t *throttle) take(key string, now time.Time) (ok bool, remaining, retryAfterSec int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.swept) >= t.cfg.SweepInterval ||
		(t.cfg.MaxEntries > 0 && len(t.buckets) >= t.cfg.MaxEntries) {
		t.sweep(now)
	}

	b := t.buckets[key]
	if b == nil {
		b = &bucket{tokens: t.capacity, refilled: now}
		t.buckets[key] = b
	}

	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.tokens = math.Min(t.capacity, b.tokens+elapsed*t.perSec)
		b.refilled = now
	}
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}

	wait := int(math.Ceil((1 - b.tokens) / t.perSec))
	if wait < 1 {
		wait = 1
	}
	return false, 0, wait
}

// sweep drops buckets idle past the TTL. Caller holds t.mu.
func (t *throttle) sweep(now time.Time) {
	for key, b := range t.buckets {
		if now.Sub(b.seen) > t.cfg.IdleTTL {
			delete(t.buckets, key)
		}
	}
	t.swept = now
}

// RateLimit throttles requests per client IP with a token bucket.
// With Burst <= 0 it returns a passthrough, matching the other guards.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Burst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	t := newThrottle(cfg)
	limit := strconv.Itoa(cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, retry := t.take(utils.ClientIP(r, cfg.TrustProxy), time.Now())

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
