package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limit is a per-client request budget: a steady refill rate plus a burst
// allowance.
type Limit struct {
	Rate    rate.Limit
	Burst   int
	Message string
}

// PerSecond builds a Limit refilling n tokens per second
func PerSecond(n float64, burst int) Limit {
	return Limit{Rate: rate.Limit(n), Burst: burst, Message: "rate limit exceeded"}
}

// PerMinute builds a Limit refilling n tokens per minute. Used for the auth
// endpoints, where budgets are small enough that per-second rates round to
// zero.
func PerMinute(n float64, burst int) Limit {
	return Limit{Rate: rate.Limit(n / 60), Burst: burst, Message: "too many attempts, try again later"}
}

// RateLimiter hands out token buckets per client IP, partitioned by scope so
// that exhausting the storefront budget does not consume login attempts.
type RateLimiter struct {
	mu            sync.Mutex
	buckets       map[string]*rate.Limiter
	cleanupTicker *time.Ticker
}

// NewRateLimiter creates a rate limiter with an empty bucket table
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		buckets:       make(map[string]*rate.Limiter),
		cleanupTicker: time.NewTicker(5 * time.Minute),
	}

	go rl.cleanup()

	return rl
}

// cleanup periodically drops all buckets so the table cannot grow without
// bound; clients start over with a full burst
func (rl *RateLimiter) cleanup() {
	for range rl.cleanupTicker.C {
		rl.mu.Lock()
		rl.buckets = make(map[string]*rate.Limiter)
		rl.mu.Unlock()
	}
}

// Stop stops the cleanup ticker
func (rl *RateLimiter) Stop() {
	rl.cleanupTicker.Stop()
}

func (rl *RateLimiter) allow(key string, l Limit) bool {
	rl.mu.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(l.Rate, l.Burst)
		rl.buckets[key] = bucket
	}
	rl.mu.Unlock()

	return bucket.Allow()
}

// Scope limits requests per client IP within the named scope. Each route
// group passes its own Limit, so the auth endpoints can run a much tighter
// budget than the public storefront.
func (rl *RateLimiter) Scope(scope string, l Limit) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		if !rl.allow(key, l) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": l.Message})
			c.Abort()
			return
		}

		c.Next()
	}
}
