package streaming

import (
	"sync"
	"time"

	"github.com/arc-self/person-engine/internal/domainerr"
)

// BreakerState is one of the three states of the circuit breaker.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// CircuitBreaker protects a downstream call (JetStream publish, Postgres
// write) from being hammered once it starts failing: after FailureThreshold
// consecutive failures it opens for ResetTimeout, then allows trial calls
// through (HalfOpen), closing again only after SuccessThreshold consecutive
// trial successes, or reopening immediately on a trial failure.
type CircuitBreaker struct {
	Name             string
	FailureThreshold int
	SuccessThreshold int
	ResetTimeout     time.Duration

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker uses a SuccessThreshold of 1 (close on the first trial
// success), matching the common case of callers that only care about the
// Closed/Open transition.
func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreakerWithSuccessThreshold(name, failureThreshold, 1, resetTimeout)
}

// NewCircuitBreakerWithSuccessThreshold is NewCircuitBreaker plus an
// explicit HalfOpen→Closed success_threshold (spec.md §4.7). A
// successThreshold <= 0 is treated as 1.
func NewCircuitBreakerWithSuccessThreshold(name string, failureThreshold, successThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	if successThreshold <= 0 {
		successThreshold = 1
	}
	return &CircuitBreaker{
		Name:             name,
		FailureThreshold: failureThreshold,
		SuccessThreshold: successThreshold,
		ResetTimeout:     resetTimeout,
		state:            BreakerClosed,
	}
}

// State returns the breaker's current state, advancing Open→HalfOpen if
// ResetTimeout has elapsed.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpenLocked()
	return b.state
}

func (b *CircuitBreaker) maybeHalfOpenLocked() {
	if b.state == BreakerOpen && time.Since(b.openedAt) >= b.ResetTimeout {
		b.state = BreakerHalfOpen
	}
}

// Allow reports whether a call should be attempted right now, and errors
// with CircuitOpenError if the breaker is Open.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpenLocked()
	if b.state == BreakerOpen {
		return domainerr.CircuitOpen(b.Name)
	}
	return nil
}

// RecordSuccess resets the failure count. While HalfOpen it also counts
// toward SuccessThreshold consecutive trial successes, only closing the
// breaker once that count is reached; a Closed breaker simply stays Closed.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	if b.state != BreakerHalfOpen {
		return
	}
	b.successes++
	if b.successes >= b.SuccessThreshold {
		b.state = BreakerClosed
		b.successes = 0
	}
}

// RecordFailure increments the failure count and opens the breaker once
// FailureThreshold consecutive failures have been recorded, or immediately
// if the trial call made from HalfOpen failed.
func (b *CircuitBreaker) RecordFailure(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.successes = 0
	if b.state == BreakerHalfOpen {
		b.state = BreakerOpen
		b.openedAt = now
		return
	}
	b.failures++
	if b.failures >= b.FailureThreshold {
		b.state = BreakerOpen
		b.openedAt = now
	}
}

// Do runs fn only if Allow permits it, and records the outcome.
func (b *CircuitBreaker) Do(now time.Time, fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		b.RecordFailure(now)
		return err
	}
	b.RecordSuccess()
	return nil
}
