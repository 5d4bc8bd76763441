package scheduler

import (
	"context"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/repository"
	"github.com/arc-self/person-engine/internal/streaming"
)

// NewDeadLetterReprocessingJob republishes every message currently parked
// on the DLQ stream back to its original subject, once an hour.
func NewDeadLetterReprocessingJob(dlq *streaming.JetStreamDeadLetter) Job {
	return Job{
		Name: "dlq-reprocessing",
		Spec: HourlyDeadLetterReprocessingSpec,
		Run: func(ctx context.Context) error {
			_, err := dlq.Reprocess(ctx)
			return err
		},
	}
}

// ActiveAggregateIDs lists the aggregates the nightly compaction sweep
// should visit. The production wiring in cmd/personengine supplies this
// from the Search/Summary projection's read model (it already tracks every
// known person id); unit tests can supply a fixed slice instead.
type ActiveAggregateIDs func(ctx context.Context) ([]person.ID, error)

// NewSnapshotCompactionJob reloads each active aggregate's current state
// and writes it through Repository.ForceSnapshot, bypassing the
// snapshot-frequency check, so a fresh snapshot is taken at the aggregate's
// current version — compacting however long a replay tail had built up
// since its last snapshot.
func NewSnapshotCompactionJob(repo *repository.Repository, listActive ActiveAggregateIDs) Job {
	return Job{
		Name: "snapshot-compaction",
		Spec: NightlySnapshotCompactionSpec,
		Run: func(ctx context.Context) error {
			ids, err := listActive(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				state, version, err := repo.Load(ctx, id)
				if err != nil {
					return err
				}
				if err := repo.ForceSnapshot(ctx, state, version); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
