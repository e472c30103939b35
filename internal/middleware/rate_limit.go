// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. Idle entries are
// evicted so the map does not grow with every address ever seen.
type ipRateLimiter struct {
	clients map[string]*client
	mtx     sync.Mutex
	limit   rate.Limit
	burst   int
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	rl := &ipRateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		burst:   burst,
	}
	go rl.evictIdle()
	return rl
}

func (rl *ipRateLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mtx.Lock()
		for ip, c := range rl.clients {
			if time.Since(c.lastSeen) > 3*time.Minute {
				delete(rl.clients, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *ipRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func (rl *ipRateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

var (
	generalLimiter = newIPRateLimiter(rate.Every(time.Second), 10) // steady API traffic
	authLimiter    = newIPRateLimiter(rate.Every(time.Minute), 5)  // login/register attempts
	uploadLimiter  = newIPRateLimiter(rate.Every(time.Minute), 10) // document uploads
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.middleware()
}
