package cep

import (
	"sync"
	"time"
)

// BreakerState is the state of the upstream circuit breaker.
type BreakerState int

const (
	// BreakerClosed lets lookups through.
	BreakerClosed BreakerState = iota
	// BreakerOpen fails lookups fast with ErrUnavailable.
	BreakerOpen
	// BreakerHalfOpen lets probe lookups through after the cooldown.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker stops calling a failing lookup service for a cooldown period.
// Safe for concurrent use.
type Breaker struct {
	mu  sync.Mutex
	now func() time.Time

	failureThreshold int
	successThreshold int
	cooldown         time.Duration

	state       BreakerState
	failures    int
	successes   int
	lastFailure time.Time
}

// BreakerOption configures a Breaker.
type BreakerOption func(*Breaker)

// WithBreakerClock replaces time.Now for cooldown checks.
func WithBreakerClock(now func() time.Time) BreakerOption {
	return func(b *Breaker) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBreaker opens after failureThreshold consecutive failures, waits
// cooldown, then closes again after successThreshold successful probes.
// Non-positive arguments take the defaults 5, 2 and 30s.
func NewBreaker(failureThreshold, successThreshold int, cooldown time.Duration, opts ...BreakerOption) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if successThreshold <= 0 {
		successThreshold = 2
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	b := &Breaker{
		now:              time.Now,
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		cooldown:         cooldown,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Allow reports whether a lookup may be attempted. An open breaker whose
// cooldown has elapsed moves to half-open.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if b.now().Sub(b.lastFailure) < b.cooldown {
			return false
		}
		b.state = BreakerHalfOpen
		b.successes = 0
		return true
	default:
		return true
	}
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.successThreshold {
			b.state = BreakerClosed
			b.failures = 0
			b.successes = 0
		}
	}
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailure = b.now()

	switch b.state {
	case BreakerClosed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.state = BreakerOpen
		}
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.successes = 0
	}
}

// State returns the current state as Allow would see it.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.now().Sub(b.lastFailure) >= b.cooldown {
		return BreakerHalfOpen
	}
	return b.state
}
