// Package command implements spec.md §4.8: load the aggregate, run the pure
// core, persist the resulting events under optimistic concurrency (retrying
// a bounded number of times on conflict), and publish them on the bus.
package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/messaging/subject"
	"github.com/arc-self/person-engine/internal/repository"
)

// DefaultMaxConflictRetries is the "small bounded number" spec.md §4.8 step
// 5 calls for.
const DefaultMaxConflictRetries = 3

// Publisher sends an already-persisted event to the bus on its computed
// subject. Publication is at-least-once; implementations must not block
// durability on it succeeding (spec.md §4.8 step 6).
type Publisher interface {
	Publish(ctx context.Context, subj string, env envelope.Envelope) error
}

// Processor constructs no domainerr values itself. Handle returns the
// errors of the layers it calls: ValidationError and NotFoundError from the
// pure core, ConflictError (once retries are spent) from the event store,
// and whatever else the repository and its stores return, such as the
// ExternalServiceError the JetStream-backed stores build. Publish failures
// are logged, not returned.
type Processor struct {
	repo             *repository.Repository
	publisher        Publisher
	log              *zap.Logger
	maxConflictRetry int
}

func NewProcessor(repo *repository.Repository, publisher Publisher, log *zap.Logger) *Processor {
	return &Processor{repo: repo, publisher: publisher, log: log, maxConflictRetry: DefaultMaxConflictRetries}
}

// Result is what Handle reports back to the caller: the events the command
// actually produced and the aggregate's version after they were appended.
type Result struct {
	Events  []person.Event
	Version uint64
}

// Handle runs one command through load → decide → save → publish, retrying
// the decide+save half on an optimistic-concurrency conflict.
func (p *Processor) Handle(ctx context.Context, actor envelope.Actor, causation envelope.Identity, cmd person.Command) (Result, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxConflictRetry; attempt++ {
		state, version, err := p.repo.Load(ctx, cmd.PersonID())
		if err != nil {
			return Result{}, err
		}

		events, err := person.Decide(state, cmd)
		if err != nil {
			return Result{}, err
		}
		if len(events) == 0 {
			return Result{Version: version}, nil
		}

		next, err := p.repo.Save(ctx, state, events, version)
		if err != nil {
			if domainerr.IsConflict(err) {
				lastErr = err
				p.log.Warn("optimistic conflict, retrying",
					zap.String("person_id", cmd.PersonID().String()),
					zap.Int("attempt", attempt),
				)
				continue
			}
			return Result{}, err
		}

		p.publishAll(ctx, actor, causation, events)
		return Result{Events: events, Version: next.Version}, nil
	}
	return Result{}, lastErr
}

func (p *Processor) publishAll(ctx context.Context, actor envelope.Actor, commandIdentity envelope.Identity, events []person.Event) {
	for _, e := range events {
		id := commandIdentity.CausedBy(e.OccurredAt())
		id.Actor = actor

		payload, err := person.EncodeEvent(e)
		if err != nil {
			p.log.Error("failed to encode event for publish", zap.String("event_type", e.EventType()), zap.Error(err))
			continue
		}
		subj := subject.Event(subject.AggregatePerson, e.Operation(), e.PersonID().String()).String()
		env := envelope.Envelope{Identity: id, Subject: subj, Type: e.EventType(), Payload: payload}
		if err := p.publisher.Publish(ctx, subj, env); err != nil {
			p.log.Error("failed to publish event", zap.String("subject", subj), zap.Error(err))
		}
	}
}
