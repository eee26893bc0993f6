package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/internal/infrastructure/ratelimit"
	"caretrack/internal/shared/logger"
	"caretrack/internal/shared/utils"
)

// RateLimit throttles by client IP using the shared sliding-window limiter.
// When the limiter backend is unavailable the request is allowed; blocking
// all traffic on a Redis outage is worse than briefly losing the limit.
func RateLimit(limiter ratelimit.RateLimiter, cfg ratelimit.Config, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow("ip:"+c.ClientIP(), cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoginRateLimit throttles login attempts per submitted email so a single
// account cannot be brute forced from many IPs.
func LoginRateLimit(limiter ratelimit.RateLimiter, log logger.Interface) gin.HandlerFunc {
	type loginBody struct {
		Email string `json:"email"`
	}

	return func(c *gin.Context) {
		var body loginBody
		if err := c.ShouldBindBodyWithJSON(&body); err != nil || body.Email == "" {
			// Malformed bodies fall through to the handler's own validation.
			c.Next()
			return
		}

		allowed, err := limiter.Allow("login:"+body.Email, ratelimit.LoginLimit)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many login attempts, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
