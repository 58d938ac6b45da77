package cep_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/casadosaber/signup/pkg/cep"
)

func TestBreaker(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	b := cep.NewBreaker(2, 2, 30*time.Second, cep.WithBreakerClock(clock))

	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.Equal(t, cep.BreakerClosed, b.State())
	b.RecordFailure()
	assert.Equal(t, cep.BreakerOpen, b.State())
	assert.False(t, b.Allow())

	now = now.Add(30 * time.Second)
	assert.Equal(t, cep.BreakerHalfOpen, b.State())
	assert.True(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, cep.BreakerOpen, b.State(), "a failed probe reopens")

	now = now.Add(31 * time.Second)
	assert.True(t, b.Allow())
	b.RecordSuccess()
	assert.Equal(t, cep.BreakerHalfOpen, b.State())
	b.RecordSuccess()
	assert.Equal(t, cep.BreakerClosed, b.State())
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	t.Parallel()

	b := cep.NewBreaker(2, 1, time.Minute)
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.Equal(t, cep.BreakerClosed, b.State())
}

func TestBreakerState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "closed", cep.BreakerClosed.String())
	assert.Equal(t, "open", cep.BreakerOpen.String())
	assert.Equal(t, "half-open", cep.BreakerHalfOpen.String())
	assert.Equal(t, "unknown", cep.BreakerState(9).String())
}
