package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bibliotek/catalog/internal/logging"
)

// RequestLogger emits one structured event per request, carrying the request
// context (request id, client ip, user agent, url, method) as fields.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := logging.WithRequest(log, logging.RequestContext{
			RequestID: uuid.NewString(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			URL:       c.Request.URL.String(),
			Method:    c.Request.Method,
		})

		c.Next()

		reqLog.Info("request handled",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// RateLimit applies a token-bucket limiter per client ip.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
