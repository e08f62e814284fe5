package ratelimit

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// New returns a Fiber middleware that rate limits requests per client IP.
// A nil limiter disables limiting and the middleware passes every request
// through. Redis errors fail open: an unreachable Redis must not take the
// login path down with it.
func New(limiter *Limiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		result, err := limiter.Allow(c.UserContext(), c.IP(), limit, window)
		if err != nil {
			log.Printf("[ratelimit] Check failed, allowing request: %v", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "Too many requests, try again later",
			})
		}

		return c.Next()
	}
}
