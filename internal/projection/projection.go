// Package projection implements spec.md §4.10: pure event folds over a
// Postgres read model, one projection per subject filter, each an
// independent durable consumer, each idempotent on message_id via
// IdempotencyStore.
package projection

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
)

// Projection folds one event into its own read model. Implementations must
// be safe to call concurrently for different aggregates and must treat an
// event type they don't recognize as a no-op, not an error.
type Projection interface {
	Name() string
	Apply(ctx context.Context, env envelope.Envelope, event person.Event) error
}

// Claimer is the idempotency seam Dispatcher depends on. IdempotencyStore
// is the production implementation; tests can substitute an in-memory one.
type Claimer interface {
	Claim(ctx context.Context, projectionName, messageID string) (bool, error)
}

// Dispatcher fans one envelope out to every registered projection
// concurrently, each gated by its own idempotency claim, mirroring
// internal/policy.Engine's per-item conc.WaitGroup fan-out with per-
// goroutine panic recovery so one broken projection cannot take down its
// siblings.
type Dispatcher struct {
	projections []Projection
	idempotency Claimer
	onError     func(projectionName string, err error)
}

func NewDispatcher(idempotency Claimer, onError func(string, error), projections ...Projection) *Dispatcher {
	return &Dispatcher{projections: projections, idempotency: idempotency, onError: onError}
}

// Dispatch applies env/event to every registered projection. A projection
// already claimed for env.Identity.MessageID is skipped, per spec.md §4.10.
// Errors are reported via onError rather than returned, since one
// projection's failure (fatal for that consumer per spec.md §4.11's
// non-idempotent-error rule) must not block its siblings from committing.
func (d *Dispatcher) Dispatch(ctx context.Context, env envelope.Envelope, event person.Event) {
	var wg conc.WaitGroup
	for _, p := range d.projections {
		p := p
		wg.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					d.onError(p.Name(), panicToError(r))
				}
			}()
			claimed, err := d.idempotency.Claim(ctx, p.Name(), env.Identity.MessageID.String())
			if err != nil {
				d.onError(p.Name(), err)
				return
			}
			if !claimed {
				return
			}
			if err := p.Apply(ctx, env, event); err != nil {
				d.onError(p.Name(), err)
			}
		})
	}
	wg.Wait()
}

func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("projection panicked: %v", r)
}
