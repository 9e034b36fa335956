// ratelimit.go implements per-caller rate limiting with a token bucket.
//
// How token bucket works:
// - Each caller gets a "bucket" with N tokens (N = requests per hour)
// - Each request consumes 1 token
// - Tokens refill at a steady rate (N tokens per hour)
// - If the bucket is empty, the request is rejected with 429 Too Many Requests
//
// API keys carry their own limit. JWT users and anonymous callers share the
// default limit, anonymous callers bucketed by client IP.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
)

// RateLimiter tracks request rates per caller.
type RateLimiter struct {
	// Go Pattern: sync.Mutex guards the map; every access both reads and
	// writes a bucket, so a plain mutex is enough.
	mu      sync.Mutex
	buckets map[string]*bucket

	defaultLimit int
	ownerKeyID   string
	ownerPrefix  string
	now          func() time.Time
}

// bucket tracks the token state for a single caller.
type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// allowResult contains the result of a rate limit check,
// including header information for the response.
type allowResult struct {
	allowed   bool
	remaining float64
	limit     float64
}

// NewRateLimiter creates a rate limiter. defaultLimit applies to callers
// without an API key of their own; zero or less disables limiting for them.
func NewRateLimiter(defaultLimit int) *RateLimiter {
	rl := &RateLimiter{
		buckets:      make(map[string]*bucket),
		defaultLimit: defaultLimit,
		now:          time.Now,
	}

	// Start background cleanup goroutine
	go rl.cleanup()

	return rl
}

// SetOwner exempts one API key, matched by ID or prefix, from limits.
func (rl *RateLimiter) SetOwner(keyID, keyPrefix string) {
	rl.ownerKeyID = keyID
	rl.ownerPrefix = keyPrefix
}

// RateLimit returns Gin middleware that enforces per-caller rate limits.
// It must run after the auth middleware.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, limit := rl.identity(c)
		if id == "" || limit <= 0 {
			c.Next()
			return
		}

		result := rl.allow(id, limit)
		c.Header("X-RateLimit-Limit", formatFloat(result.limit))
		if !result.allowed {
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit exceeded. Try again later.",
				Code:    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}
		c.Header("X-RateLimit-Remaining", formatFloat(result.remaining))

		c.Next()
	}
}

// identity picks the bucket key and limit for a request. An empty id means
// the request is not limited.
func (rl *RateLimiter) identity(c *gin.Context) (string, int) {
	if apiKey := GetAPIKey(c); apiKey != nil {
		if IsOwnerAPIKey(apiKey, rl.ownerKeyID, rl.ownerPrefix) {
			return "", 0
		}
		return "key:" + apiKey.ID, apiKey.RateLimit
	}
	if user := GetUser(c); user != nil {
		return "user:" + user.ID, rl.defaultLimit
	}
	return "ip:" + c.ClientIP(), rl.defaultLimit
}

// allow checks if a request should be allowed, consuming a token if so.
// The result is computed under the lock so the headers match the decision.
func (rl *RateLimiter) allow(id string, rateLimit int) allowResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[id]
	if !exists {
		b = &bucket{
			tokens:     float64(rateLimit),
			maxTokens:  float64(rateLimit),
			refillRate: float64(rateLimit) / 3600.0, // tokens per second (rate per hour)
			lastRefill: now,
		}
		rl.buckets[id] = b
	}

	// Refill tokens based on elapsed time
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1.0 {
		return allowResult{allowed: false, remaining: 0, limit: b.maxTokens}
	}

	b.tokens--
	return allowResult{allowed: true, remaining: b.tokens, limit: b.maxTokens}
}

// cleanup periodically removes stale buckets to prevent memory leaks.
func (rl *RateLimiter) cleanup() {
	// Go Pattern: time.Ticker sends values at regular intervals.
	// Always defer ticker.Stop() to release resources.
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.prune(time.Hour)
	}
}

// prune drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) prune(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for id, b := range rl.buckets {
		if now.Sub(b.lastRefill) > maxIdle {
			delete(rl.buckets, id)
		}
	}
}

// IsOwnerAPIKey checks if the given API key should bypass limits.
// It matches either the key ID or the key prefix if configured.
func IsOwnerAPIKey(apiKey *models.APIKey, ownerKeyID, ownerKeyPrefix string) bool {
	if apiKey == nil {
		return false
	}
	if ownerKeyID != "" && apiKey.ID == ownerKeyID {
		return true
	}
	return ownerKeyPrefix != "" && apiKey.KeyPrefix == ownerKeyPrefix
}

// formatFloat converts a float to a string for headers.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.0f", f)
}
