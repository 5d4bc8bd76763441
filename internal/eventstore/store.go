// Package eventstore persists and replays Person event streams. Store is
// the seam between the pure aggregate core and JetStream: Append enforces
// optimistic concurrency on the stream's current version, GetEvents/
// GetEventsAfter replay a stream (or its tail since a snapshot), and
// Subscribe feeds the policy engine and projections.
package eventstore

import (
	"context"
	"time"

	"github.com/arc-self/person-engine/internal/domain/person"
)

// StoredEvent is one envelope-addressed event as persisted, carrying the
// stream-relative sequence number Append assigned it.
type StoredEvent struct {
	Sequence  uint64
	Event     person.Event
	EventType string
	MessageID string
	RecordedAt time.Time
}

// Store is the event store seam. Implementations: JetStream-backed (wired
// in production) and an in-memory map (used by tests and the command
// processor's own unit tests).
type Store interface {
	// Append writes events to aggregateID's stream, failing with a
	// ConflictError if the stream's current version does not equal
	// expectedVersion (optimistic concurrency, spec.md §4.3).
	Append(ctx context.Context, aggregateID person.ID, expectedVersion uint64, events []person.Event) error

	// GetEvents returns every event recorded for aggregateID, in order.
	GetEvents(ctx context.Context, aggregateID person.ID) ([]StoredEvent, error)

	// GetEventsAfter returns events recorded for aggregateID with sequence
	// strictly greater than afterSequence — the repository's snapshot-tail
	// replay path.
	GetEventsAfter(ctx context.Context, aggregateID person.ID, afterSequence uint64) ([]StoredEvent, error)

	// CurrentVersion returns the number of events recorded for aggregateID.
	CurrentVersion(ctx context.Context, aggregateID person.ID) (uint64, error)

	// Subscribe delivers every event appended for any aggregate to handler,
	// starting from the stream's current position (only newly appended
	// events, not historical replay — callers needing history call
	// GetEvents first). Subscribe blocks until ctx is cancelled.
	Subscribe(ctx context.Context, handler func(StoredEvent) error) error
}
