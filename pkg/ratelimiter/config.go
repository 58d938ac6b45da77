package ratelimiter

import (
	"fmt"
	"time"
)

// Config describes a token bucket. Nest it with an envPrefix to configure
// several limits from the environment:
//
//	SubmitLimit ratelimiter.Config `envPrefix:"SIGNUP_SUBMIT_"`
type Config struct {
	Capacity       int           `env:"RATE_CAPACITY" envDefault:"20"`        // burst size
	RefillRate     int           `env:"RATE_REFILL" envDefault:"10"`          // tokens added per interval
	RefillInterval time.Duration `env:"RATE_REFILL_INTERVAL" envDefault:"1m"` // zero capacity disables the limit
}

// Enabled reports whether the limit applies.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// refill returns the token count after the intervals elapsed since
// refilledAt, and the new refill mark.
func (c Config) refill(tokens int, refilledAt, now time.Time) (int, time.Time) {
	elapsed := now.Sub(refilledAt)
	if elapsed < c.RefillInterval {
		return tokens, refilledAt
	}
	// Enough intervals to fill the bucket from empty; more would overflow.
	maxIntervals := int64(c.Capacity/c.RefillRate + 1)
	intervals := min(int64(elapsed/c.RefillInterval), maxIntervals)
	tokens = min(tokens+int(intervals)*c.RefillRate, c.Capacity)
	return tokens, refilledAt.Add(time.Duration(intervals) * c.RefillInterval)
}
