package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Fixed library defaults; there is no tunable rate-limit policy beyond these.
const (
	rateLimitPerSecond = 10
	rateLimitBurst     = 20
)

type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(rateLimitPerSecond), rateLimitBurst)
		rl.limiters[key] = l
	}
	return l
}

// RateLimit applies a token-bucket limit per client IP. It is mounted ahead
// of Auth so rejected requests never reach token verification.
func RateLimit() gin.HandlerFunc {
	rl := &rateLimiter{limiters: make(map[string]*rate.Limiter)}

	return func(c *gin.Context) {
		if !rl.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
