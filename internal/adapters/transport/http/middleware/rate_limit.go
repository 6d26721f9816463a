package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/response"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/ratelimit"
	"github.com/gin-gonic/gin"
)

// NewHTTPRateLimitPerIP limits requests per client IP. Idle IPs are evicted
// until ctx is cancelled.
func NewHTTPRateLimitPerIP(
	ctx context.Context,
	limit, burst, cacheSize int,
	ttl time.Duration,
) gin.HandlerFunc {
	visitors := ratelimit.NewPerKey(limit, burst, cacheSize, ttl)
	go visitors.RunEviction(ctx)

	return func(c *gin.Context) {
		if !visitors.Allow(c.ClientIP()) {
			response.Abort(c, http.StatusTooManyRequests, response.CodeRateLimited, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
