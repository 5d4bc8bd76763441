// Package person implements the pure, side-effect-free aggregate core of
// spec.md §4.1: two total functions, Decide and Apply, plus the coalgebraic
// ObserveAt operation. Nothing in this package performs I/O.
package person

import "time"

// CoreIdentity is the part of a Person that is immutable once present,
// modulo the single allowed transition (setting an absent birth date).
type CoreIdentity struct {
	LegalName Name
	BirthDate *time.Time
}

// Person is the aggregate of spec.md §3.
type Person struct {
	ID           ID
	CoreIdentity CoreIdentity
	Lifecycle    Lifecycle
	Attributes   AttributeSet
	Components   ComponentSet
	Version      uint64
}

// Empty returns the zero-value aggregate Replay folds from, before any
// PersonCreated event has been applied.
func Empty() Person {
	return Person{
		Components: NewComponentSet(),
	}
}

// ObserveAt is the coalgebraic observation of spec.md §4.1: a pure,
// read-only, idempotent projection of the aggregate's currently-known
// attributes onto what was true on date d. It never mutates state and is
// independent of Version.
func (p Person) ObserveAt(d time.Time) AttributeSet {
	return p.Attributes.ValidOn(d)
}

// CurrentlyValid is ObserveAt(now) by definition (spec.md §8).
func (p Person) CurrentlyValid(now time.Time) AttributeSet {
	return p.ObserveAt(now)
}
