package ratelimit

import (
	"time"
)

// Config holds rate limiter configuration.
type Config struct {
	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Window is the time window for the rate limit.
	Window time.Duration

	// KeyPrefix is the prefix for Redis keys.
	KeyPrefix string
}

// DefaultConfig returns a config suited to credential endpoints: generous
// enough for normal clients, tight enough to slow down guessing.
func DefaultConfig() Config {
	return Config{
		Limit:     10,
		Window:    time.Minute,
		KeyPrefix: "ratelimit:",
	}
}
