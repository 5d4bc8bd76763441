package projection

import (
	"context"
	"fmt"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection/db"
)

// Timeline maintains the chronological per-PersonId event descriptor log
// spec.md §4.10 calls for, for audit. Every event type is recorded; the
// projection never filters.
type Timeline struct {
	queries db.Querier
}

func NewTimeline(queries db.Querier) *Timeline {
	return &Timeline{queries: queries}
}

func (*Timeline) Name() string { return "timeline" }

func (t *Timeline) Apply(ctx context.Context, env envelope.Envelope, event person.Event) error {
	if err := t.queries.AppendTimelineEntry(ctx, db.TimelineEntry{
		PersonID:    event.PersonID().String(),
		Sequence:    uint64(event.OccurredAt().UnixNano()),
		EventType:   event.EventType(),
		OccurredAt:  event.OccurredAt(),
		Description: describe(event),
	}); err != nil {
		return fmt.Errorf("timeline: append: %w", err)
	}
	return nil
}

func describe(event person.Event) string {
	return event.EventType() + " at " + event.OccurredAt().UTC().Format("2006-01-02T15:04:05Z")
}
