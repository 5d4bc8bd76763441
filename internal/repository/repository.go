// Package repository implements spec.md §4.5: load shortcuts replay to
// "latest snapshot plus the event tail since it was taken"; save appends
// new events under optimistic concurrency and snapshots every
// snapshot_frequency versions.
package repository

import (
	"context"
	"time"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/eventstore"
	"github.com/arc-self/person-engine/internal/snapshot"
)

// DefaultSnapshotFrequency snapshots every 100 versions, the same order of
// magnitude the teacher's own outbox-compaction jobs use for batch sizing.
const DefaultSnapshotFrequency = 100

// Repository is the load/save boundary the command processor depends on.
type Repository struct {
	events            eventstore.Store
	snapshots         snapshot.Store
	snapshotFrequency uint64
	clock             func() time.Time
}

func New(events eventstore.Store, snapshots snapshot.Store, snapshotFrequency uint64, clock func() time.Time) *Repository {
	if snapshotFrequency == 0 {
		snapshotFrequency = DefaultSnapshotFrequency
	}
	return &Repository{events: events, snapshots: snapshots, snapshotFrequency: snapshotFrequency, clock: clock}
}

// Load returns the current aggregate state and its version. A person.ID with
// no events yet returns person.Empty() at version 0, not an error — callers
// decide whether that's valid for the command they're about to apply.
func (r *Repository) Load(ctx context.Context, id person.ID) (person.Person, uint64, error) {
	state := person.Empty()
	var fromVersion uint64

	if rec, ok, err := r.snapshots.Latest(ctx, id); err != nil {
		return person.Person{}, 0, err
	} else if ok {
		state = rec.State
		fromVersion = rec.Version
	}

	tail, err := r.events.GetEventsAfter(ctx, id, fromVersion)
	if err != nil {
		return person.Person{}, 0, err
	}
	events := make([]person.Event, 0, len(tail))
	for _, se := range tail {
		events = append(events, se.Event)
	}
	state, err = person.ReplayFrom(state, events)
	if err != nil {
		return person.Person{}, 0, err
	}

	version, err := r.events.CurrentVersion(ctx, id)
	if err != nil {
		return person.Person{}, 0, err
	}
	if version < fromVersion+uint64(len(events)) {
		return person.Person{}, 0, domainerr.Validation("repository: store version %d is behind replayed version %d for %s", version, fromVersion+uint64(len(events)), id)
	}
	return state, version, nil
}

// Save appends newEvents under expectedVersion, folds them onto current to
// derive the post-save state, and snapshots it if that crosses a
// snapshotFrequency boundary.
func (r *Repository) Save(ctx context.Context, current person.Person, newEvents []person.Event, expectedVersion uint64) (person.Person, error) {
	if err := r.events.Append(ctx, current.ID, expectedVersion, newEvents); err != nil {
		return person.Person{}, err
	}

	next, err := person.ReplayFrom(current, newEvents)
	if err != nil {
		return person.Person{}, err
	}

	newVersion := expectedVersion + uint64(len(newEvents))
	if r.crossesSnapshotBoundary(expectedVersion, newVersion) {
		if err := r.snapshots.Put(ctx, snapshot.Record{
			AggregateID: next.ID,
			Version:     newVersion,
			State:       next,
			CreatedAt:   r.now(),
		}); err != nil {
			return person.Person{}, err
		}
	}
	return next, nil
}

// ForceSnapshot writes a snapshot of state at version unconditionally,
// bypassing the snapshotFrequency cadence. Used by the scheduled
// compaction sweep, which wants every active aggregate snapshotted at a
// known cadence regardless of how many versions it has accumulated since
// its last automatic snapshot.
func (r *Repository) ForceSnapshot(ctx context.Context, state person.Person, version uint64) error {
	return r.snapshots.Put(ctx, snapshot.Record{
		AggregateID: state.ID,
		Version:     version,
		State:       state,
		CreatedAt:   r.now(),
	})
}

func (r *Repository) crossesSnapshotBoundary(before, after uint64) bool {
	return after/r.snapshotFrequency > before/r.snapshotFrequency
}

func (r *Repository) now() time.Time {
	if r.clock != nil {
		return r.clock()
	}
	return time.Now()
}
