package ratelimit

import "time"

type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	Allow(key string, config Config) (bool, error)
	Reset(key string) error
}

// LoginLimit is applied per email address on the login endpoint.
var LoginLimit = Config{
	RequestsPerMinute: 5,
	RequestsPerHour:   20,
}

// windowTTLSlack keeps keys alive slightly past their window so a burst at
// the boundary is still counted.
const windowTTLSlack = time.Minute
