package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterPool keeps one token bucket per client key.
type limiterPool struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	r       rate.Limit
	burst   int
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	limiter, ok := p.clients[key]
	if !ok {
		limiter = rate.NewLimiter(p.r, p.burst)
		p.clients[key] = limiter
	}
	return limiter
}

// RateLimiter throttles requests per client. The client is identified by
// ipHeader when one is configured (for deployments whose proxy puts the real
// address in a custom header); otherwise by the resolved client IP.
func RateLimiter(r rate.Limit, burst int, ipHeader string) gin.HandlerFunc {
	pool := &limiterPool{
		clients: make(map[string]*rate.Limiter),
		r:       r,
		burst:   burst,
	}
	return func(c *gin.Context) {
		key := c.ClientIP()
		if ipHeader != "" {
			if v := c.GetHeader(ipHeader); v != "" {
				key = v
			}
		}
		if !pool.get(key).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
