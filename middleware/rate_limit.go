package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/utils"
)

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
	mu      sync.Mutex
}

// Idle limiters are reclaimed so one-off callers do not accumulate forever.
const limiterTTL = 5 * time.Minute

var (
	limiters   = map[string]*rateLimiter{}
	limitersMu sync.Mutex
)

// RateLimitMiddleware applies a token-bucket rate limit per calling module,
// falling back to client IP for callers that do not identify themselves.
// The reporting modules set X-Client-Module so one chatty module cannot
// starve the others.
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	perMinute := cfg.RateLimitPerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	r := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}

	return func(ctx *gin.Context) {
		key := ctx.GetHeader("X-Client-Module")
		if key == "" {
			key = ctx.ClientIP()
		}
		limiter := limiterFor(key, r, burst)

		limiter.mu.Lock()
		allowed := limiter.limiter.Allow()
		limiter.mu.Unlock()

		if !allowed {
			utils.Error(ctx, 429, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// limiterFor returns the bucket for a caller key, creating it on first use
// and refreshing its idle deadline. Must not be called with limitersMu held.
func limiterFor(key string, limit rate.Limit, burst int) *rateLimiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	dropIdleLocked()

	if limiter, ok := limiters[key]; ok {
		limiter.expires = time.Now().Add(limiterTTL)
		return limiter
	}

	limiter := &rateLimiter{
		limiter: rate.NewLimiter(limit, burst),
		expires: time.Now().Add(limiterTTL),
	}
	limiters[key] = limiter
	return limiter
}

func dropIdleLocked() {
	now := time.Now()
	for key, limiter := range limiters {
		if now.After(limiter.expires) {
			delete(limiters, key)
		}
	}
}
