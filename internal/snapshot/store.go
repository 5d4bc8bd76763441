// Package snapshot holds whole-Person snapshots keyed by aggregate id, used
// by internal/repository to shortcut replay to "latest snapshot + event
// tail" instead of folding an aggregate's entire history on every load
// (spec.md §4.4/§4.5).
package snapshot

import (
	"context"
	"time"

	"github.com/arc-self/person-engine/internal/domain/person"
)

// Record is the SnapshotRecord of spec.md §4.4: a whole Person value, not a
// diff, plus the version it was taken at.
type Record struct {
	AggregateID person.ID
	Version     uint64
	State       person.Person
	CreatedAt   time.Time
}

// Store is the Put/Latest contract of spec.md §4.4. Implementations may
// retain only the single most recent snapshot per aggregate; N=1 is
// explicitly acceptable.
type Store interface {
	Put(ctx context.Context, record Record) error
	Latest(ctx context.Context, aggregateID person.ID) (Record, bool, error)
}
