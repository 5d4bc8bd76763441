package streaming_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/streaming"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := streaming.NewCircuitBreaker("jetstream", 2, time.Minute)
	now := time.Now()

	assert.NoError(t, cb.Allow())
	cb.RecordFailure(now)
	assert.Equal(t, streaming.BreakerClosed, cb.State())
	cb.RecordFailure(now)
	assert.Equal(t, streaming.BreakerOpen, cb.State())

	err := cb.Allow()
	require.Error(t, err)
	assert.True(t, domainerr.IsCircuitOpen(err))
}

func TestCircuitBreakerHalfOpensAfterResetTimeout(t *testing.T) {
	cb := streaming.NewCircuitBreaker("jetstream", 1, 10*time.Millisecond)
	opened := time.Now()
	cb.RecordFailure(opened)
	require.Equal(t, streaming.BreakerOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, streaming.BreakerHalfOpen, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopensImmediately(t *testing.T) {
	cb := streaming.NewCircuitBreaker("jetstream", 1, 5*time.Millisecond)
	now := time.Now()
	cb.RecordFailure(now)
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, streaming.BreakerHalfOpen, cb.State())

	cb.RecordFailure(time.Now())
	assert.Equal(t, streaming.BreakerOpen, cb.State())
}

func TestCircuitBreakerDoClosesOnSuccessAfterFailures(t *testing.T) {
	cb := streaming.NewCircuitBreaker("jetstream", 3, time.Minute)
	now := time.Now()

	_ = cb.Do(now, func() error { return errors.New("boom") })
	_ = cb.Do(now, func() error { return nil })
	assert.Equal(t, streaming.BreakerClosed, cb.State())
}

func TestCircuitBreakerRequiresSuccessThresholdConsecutiveSuccessesToClose(t *testing.T) {
	cb := streaming.NewCircuitBreakerWithSuccessThreshold("jetstream", 1, 2, 5*time.Millisecond)
	cb.RecordFailure(time.Now())
	require.Equal(t, streaming.BreakerOpen, cb.State())

	time.Sleep(10 * time.Millisecond)
	require.Equal(t, streaming.BreakerHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, streaming.BreakerHalfOpen, cb.State(), "one trial success is not enough at success_threshold 2")

	cb.RecordSuccess()
	assert.Equal(t, streaming.BreakerClosed, cb.State(), "second consecutive trial success should close the breaker")
}

func TestCircuitBreakerHalfOpenFailureResetsSuccessStreak(t *testing.T) {
	cb := streaming.NewCircuitBreakerWithSuccessThreshold("jetstream", 1, 2, 5*time.Millisecond)
	cb.RecordFailure(time.Now())
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, streaming.BreakerHalfOpen, cb.State())

	cb.RecordSuccess()
	cb.RecordFailure(time.Now())
	require.Equal(t, streaming.BreakerOpen, cb.State())

	time.Sleep(10 * time.Millisecond)
	require.Equal(t, streaming.BreakerHalfOpen, cb.State())
	cb.RecordSuccess()
	assert.Equal(t, streaming.BreakerHalfOpen, cb.State(), "the earlier success streak must not carry over after reopening")
}
