package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aulanet/backend/pkg/redis"
	"aulanet/backend/pkg/response"
)

// RateLimit fixed-window request limiting backed by Redis.
// limit: requests allowed per window. A nil rdb or a Redis error lets the
// request through, matching the JWTAuth degradation policy.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10008, "too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
