package rate_limit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per key inside the process. Buckets of
// keys that stay idle longer than idleTTL are dropped on the next check.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyedLimiter
	idleTTL  time.Duration
	now      func() time.Time
}

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

const (
	defaultRPS     = 100
	defaultIdleTTL = 5 * time.Minute
)

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*keyedLimiter),
		idleTTL:  defaultIdleTTL,
		now:      time.Now,
	}
}

func (r *RateLimiter) CheckRateLimit(key string, rpsLimit, burstLimit int) *RateLimitResult {
	rpsLimit, burstLimit = normalizeLimits(rpsLimit, burstLimit)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdle(now)

	limiter := r.getLimiter(key, rpsLimit, burstLimit, now)
	allowed := limiter.AllowN(now, 1)
	tokens := limiter.TokensAt(now)

	var retryAfterSec int
	if !allowed {
		retryAfterMs := 1000.0 / float64(rpsLimit)
		retryAfterSec = max(1, int(math.Ceil(retryAfterMs/1000.0)))
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     max(0, int(math.Floor(tokens))),
		ResetTime:     timeToFull(now, tokens, rpsLimit, burstLimit),
		RetryAfterSec: retryAfterSec,
	}
}

func (r *RateLimiter) getLimiter(key string, rpsLimit, burstLimit int, now time.Time) *rate.Limiter {
	entry, ok := r.limiters[key]
	if !ok {
		entry = &keyedLimiter{limiter: rate.NewLimiter(rate.Limit(rpsLimit), burstLimit)}
		r.limiters[key] = entry
	}

	if entry.limiter.Limit() != rate.Limit(rpsLimit) {
		entry.limiter.SetLimitAt(now, rate.Limit(rpsLimit))
	}
	if entry.limiter.Burst() != burstLimit {
		entry.limiter.SetBurstAt(now, burstLimit)
	}

	entry.lastSeen = now
	return entry.limiter
}

func (r *RateLimiter) evictIdle(now time.Time) {
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.limiters, key)
		}
	}
}

func normalizeLimits(rpsLimit, burstLimit int) (int, int) {
	if rpsLimit <= 0 {
		rpsLimit = defaultRPS
	}
	if burstLimit <= 0 {
		// default burst is 5x RPS or 500, whichever is higher
		burstLimit = max(rpsLimit*5, 500)
	}
	return rpsLimit, burstLimit
}

func timeToFull(now time.Time, tokens float64, rpsLimit, burstLimit int) time.Time {
	if tokens >= float64(burstLimit) {
		return now
	}

	missing := float64(burstLimit) - tokens
	timeToFullMs := math.Ceil(missing * 1000.0 / float64(rpsLimit))
	return now.Add(time.Duration(timeToFullMs) * time.Millisecond)
}
