package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/shared/response"
	"inventory-backend/pkg/logger"
)

// Counter is the subset of pkg/cache.Cache the rate limiter needs.
type Counter interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// APIRateLimit is a fixed window limiter keyed by client IP. The window
// starts with the first request; store errors let the request through.
func APIRateLimit(counter Counter, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rate_limit:" + c.ClientIP()

		count, err := counter.IncrementWindow(ctx, key, window)
		if err != nil {
			logger.Error("rate limit: increment failed", err)
			c.Next()
			return
		}

		remaining := int64(maxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(maxRequests) {
			retryAfter := window
			if ttl, err := counter.TTL(ctx, key); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))

			response.TooManyRequests(c, fmt.Sprintf("Too many requests from this IP, please try again after %s", retryAfter.Round(time.Second)))
			c.Abort()
			return
		}

		c.Next()
	}
}
