package streaming

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
)

// wireEnvelope is the msgpack encoding of one published envelope, carrying
// its full identity block alongside the already-encoded domain payload so a
// subscriber can reconstruct correlation/causation without a second fetch.
type wireEnvelope struct {
	MessageID     string
	CorrelationID string
	CausationID   string
	Timestamp     time.Time
	ActorKind     string
	ActorID       string
	Metadata      map[string]string
	Subject       string
	Type          string
	Payload       []byte
}

func encodeEnvelope(env envelope.Envelope) ([]byte, error) {
	return msgpack.Marshal(wireEnvelope{
		MessageID:     env.Identity.MessageID.String(),
		CorrelationID: string(env.Identity.CorrelationID),
		CausationID:   string(env.Identity.CausationID),
		Timestamp:     env.Identity.Timestamp,
		ActorKind:     env.Identity.Actor.Kind,
		ActorID:       env.Identity.Actor.ID,
		Metadata:      env.Identity.Metadata,
		Subject:       env.Subject,
		Type:          env.Type,
		Payload:       env.Payload,
	})
}

// JetStreamPublisher is the command.Publisher implementation that sits
// between the command processor and the bus: every publish attempt is
// wrapped in RetryPolicy, gated by a CircuitBreaker, and, once both are
// exhausted, handed to the dead-letter publisher instead of being dropped,
// mirroring original_source/src/infrastructure/retry.rs's
// retry-then-dead-letter chain.
type JetStreamPublisher struct {
	js      nats.JetStreamContext
	retry   RetryPolicy
	breaker *CircuitBreaker
	dlq     DeadLetterPublisher
	log     *zap.Logger
}

func NewJetStreamPublisher(js nats.JetStreamContext, retry RetryPolicy, breaker *CircuitBreaker, dlq DeadLetterPublisher, log *zap.Logger) *JetStreamPublisher {
	return &JetStreamPublisher{js: js, retry: retry, breaker: breaker, dlq: dlq, log: log}
}

// Publish attempts delivery under RetryPolicy and the circuit breaker. On
// exhaustion (or while the breaker is open) it dead-letters env rather than
// returning an error, so a slow or unreachable bus never blocks durability:
// the event was already appended to the store before Publish was ever
// called (spec.md §4.8 step 6).
func (p *JetStreamPublisher) Publish(ctx context.Context, subj string, env envelope.Envelope) error {
	data, err := encodeEnvelope(env)
	if err != nil {
		return domainerr.Serialization(env.Type, err)
	}

	now := time.Now()
	publishErr := p.breaker.Do(now, func() error {
		return p.retry.Do(ctx, func() error {
			_, err := p.js.Publish(subj, data, nats.Context(ctx))
			return err
		})
	})
	if publishErr == nil {
		return nil
	}

	p.log.Warn("publish exhausted retries, dead-lettering",
		zap.String("subject", subj),
		zap.String("message_id", env.Identity.MessageID.String()),
		zap.Error(publishErr),
	)

	failed := FailedEvent{
		EventID:         env.Identity.MessageID.String(),
		OriginalSubject: subj,
		Payload:         data,
		FailureReason:   publishErr.Error(),
		FailureCount:    1,
		FirstFailedAt:   now,
		LastFailedAt:    now,
		ConsumerName:    "command.Processor",
	}
	if err := p.dlq.PublishFailed(ctx, failed); err != nil {
		return fmt.Errorf("publish failed and dead-letter also failed: %w", err)
	}
	return nil
}
