package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns per-caller token bucket rate limiting.
// Each caller identity set by APIKeyAuth gets a bucket refilling at rps tokens
// per second up to burst. Every lookup hits the paid upstream API, so an empty
// bucket is answered with 429 rather than queued.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		apiKey := c.GetString(ContextKeyAPIKey)
		if apiKey == "" {
			c.Next()
			return
		}

		mu.Lock()
		limiter, ok := limiters[apiKey]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[apiKey] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
