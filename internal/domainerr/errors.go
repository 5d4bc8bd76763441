// Package domainerr defines the error taxonomy shared by the aggregate core
// and its infrastructure: the pure core produces validation and not-found
// failures; conflict, serialization and external-service failures come from
// the event store, snapshot store and streaming layer that talk to the bus.
package domainerr

import (
	"errors"
	"fmt"
)

// ValidationError is returned by the pure aggregate core for illegal
// commands. It never wraps an I/O error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError is returned when an append's expected version does not
// match the store's current version.
type ConflictError struct {
	AggregateID string
	Current     uint64
	Expected    uint64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("optimistic conflict on %s: expected version %d, store is at %d",
		e.AggregateID, e.Expected, e.Current)
}

func Conflict(aggregateID string, current, expected uint64) error {
	return &ConflictError{AggregateID: aggregateID, Current: current, Expected: expected}
}

// NotFoundError is returned when an aggregate referenced by a command does
// not exist.
type NotFoundError struct {
	AggregateID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("aggregate not found: %s", e.AggregateID)
}

func NotFound(aggregateID string) error {
	return &NotFoundError{AggregateID: aggregateID}
}

// ExternalServiceError wraps a failure from the bus, an event store, or any
// other out-of-process dependency.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func ExternalService(service string, err error) error {
	return &ExternalServiceError{Service: service, Err: err}
}

// SerializationError indicates a payload could not be decoded into the
// shape its event_type claims.
type SerializationError struct {
	EventType string
	Err       error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error for %s: %v", e.EventType, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

func Serialization(eventType string, err error) error {
	return &SerializationError{EventType: eventType, Err: err}
}

// TimeoutError indicates an awaited I/O operation exceeded its deadline.
// Per §7 it is treated as an ExternalServiceError for retry purposes but is
// kept distinct so callers can tell the two apart.
type TimeoutError struct {
	Operation string
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout during %s: %v", e.Operation, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func Timeout(operation string, err error) error {
	return &TimeoutError{Operation: operation, Err: err}
}

// CircuitOpenError is returned immediately by a breaker-wrapped call while
// the breaker is Open.
type CircuitOpenError struct {
	Name string
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit open: %s", e.Name)
}

func CircuitOpen(name string) error {
	return &CircuitOpenError{Name: name}
}

// IsValidation reports whether err (or something it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConflict reports whether err (or something it wraps) is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsCircuitOpen reports whether err (or something it wraps) is a CircuitOpenError.
func IsCircuitOpen(err error) bool {
	var c *CircuitOpenError
	return errors.As(err, &c)
}
