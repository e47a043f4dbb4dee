package middleware

import (
	"net/http"
	"sync"
	"time"

	"tracker/metrics"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a token bucket per client IP. Used mainly to keep sync
// requests from hammering the upstream training site.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int           // Tokens refilled per interval
	burst    int           // Burst capacity
	interval time.Duration // Refill interval
}

type visitor struct {
	tokens      int
	lastUpdated time.Time
}

func NewRateLimiter(rate int, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{tokens: rl.burst, lastUpdated: time.Now()}
		rl.visitors[ip] = v
	}

	// Refill tokens
	now := time.Now()
	refill := int(now.Sub(v.lastUpdated)/rl.interval) * rl.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > rl.burst {
			v.tokens = rl.burst
		}
		v.lastUpdated = now
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			metrics.RateLimiterRejections.WithLabelValues(ip).Inc()

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
