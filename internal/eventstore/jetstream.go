package eventstore

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/messaging/subject"
	"github.com/arc-self/person-engine/internal/streaming"
)

// wireEvent is the msgpack envelope for one stored event: the event's
// concrete type name plus its msgpack-encoded payload, so JetStream replays
// can reconstruct the correct person.Event variant. MessageID is assigned
// once at Append time and carried through every replay, so a projection's
// idempotency claim (keyed on it) actually protects against redelivery
// instead of claiming a fresh id on every consume.
type wireEvent struct {
	PersonID   string
	EventType  string
	MessageID  string
	OccurredAt time.Time
	Payload    []byte
}

// JetStream is the production Store, appending to and replaying from
// StreamPersonEvents. It keys each aggregate's stream position by
// re-reading every message on that aggregate's subject, matching the
// teacher's pattern of treating JetStream itself as the system of record
// rather than layering a separate sequence table on top of it.
type JetStream struct {
	js     nats.JetStreamContext
	log    *zap.Logger
	codec  Codec
}

// Codec decodes a wire event type name + payload back into a concrete
// person.Event. Supplied by the caller so eventstore doesn't need to import
// every event constructor itself.
type Codec interface {
	Decode(eventType string, occurredAt time.Time, personID person.ID, payload []byte) (person.Event, error)
	EncodePayload(event person.Event) ([]byte, error)
}

func NewJetStream(js nats.JetStreamContext, codec Codec, log *zap.Logger) *JetStream {
	return &JetStream{js: js, codec: codec, log: log}
}

// ProvisionStream idempotently ensures StreamPersonEvents exists, mirroring
// natsclient.Client.ProvisionStreams's create-if-missing pattern.
func (s *JetStream) ProvisionStream() error {
	cfg := streaming.DefaultStreamConfig()
	_, err := s.js.StreamInfo(cfg.Name)
	if err == nil {
		return nil
	}
	if err != nats.ErrStreamNotFound {
		return fmt.Errorf("stream info: %w", err)
	}
	_, err = s.js.AddStream(&nats.StreamConfig{
		Name:      cfg.Name,
		Subjects:  cfg.Subjects,
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    cfg.MaxAge,
		MaxMsgs:   cfg.MaxMsgs,
		MaxBytes:  cfg.MaxBytes,
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", cfg.Name, err)
	}
	s.log.Info("jetstream stream provisioned", zap.String("stream", cfg.Name))
	return nil
}

func (s *JetStream) streamSubject(aggregateID person.ID) string {
	return subject.Event(subject.AggregatePerson, "*", aggregateID.String()).String()
}

func (s *JetStream) Append(ctx context.Context, aggregateID person.ID, expectedVersion uint64, events []person.Event) error {
	current, err := s.CurrentVersion(ctx, aggregateID)
	if err != nil {
		return err
	}
	if current != expectedVersion {
		return domainerr.Conflict(aggregateID.String(), current, expectedVersion)
	}

	for _, e := range events {
		payload, err := s.codec.EncodePayload(e)
		if err != nil {
			return domainerr.Serialization(e.EventType(), err)
		}
		wire := wireEvent{
			PersonID:   aggregateID.String(),
			EventType:  e.EventType(),
			MessageID:  envelope.NewMessageID().String(),
			OccurredAt: e.OccurredAt(),
			Payload:    payload,
		}
		data, err := msgpack.Marshal(wire)
		if err != nil {
			return domainerr.Serialization(e.EventType(), err)
		}
		subj := subject.Event(subject.AggregatePerson, e.Operation(), aggregateID.String()).String()
		if _, err := s.js.Publish(subj, data, nats.Context(ctx)); err != nil {
			return domainerr.ExternalService("nats jetstream", err)
		}
	}
	return nil
}

func (s *JetStream) GetEvents(ctx context.Context, aggregateID person.ID) ([]StoredEvent, error) {
	return s.replay(ctx, aggregateID, 0)
}

func (s *JetStream) GetEventsAfter(ctx context.Context, aggregateID person.ID, afterSequence uint64) ([]StoredEvent, error) {
	return s.replay(ctx, aggregateID, afterSequence)
}

func (s *JetStream) replay(ctx context.Context, aggregateID person.ID, afterSequence uint64) ([]StoredEvent, error) {
	sub, err := s.js.SubscribeSync(s.streamSubject(aggregateID), nats.DeliverAll(), nats.AckExplicit())
	if err != nil {
		return nil, domainerr.ExternalService("nats jetstream", err)
	}
	defer sub.Unsubscribe()

	var out []StoredEvent
	var seq uint64
	for {
		msg, err := sub.NextMsgWithContext(ctx)
		if err != nil {
			if err == nats.ErrTimeout || err == context.DeadlineExceeded {
				break
			}
			break
		}
		_ = msg.Ack()

		var wire wireEvent
		if err := msgpack.Unmarshal(msg.Data, &wire); err != nil {
			return nil, domainerr.Serialization("unknown", err)
		}
		seq++
		if seq <= afterSequence {
			continue
		}
		ev, err := s.codec.Decode(wire.EventType, wire.OccurredAt, aggregateID, wire.Payload)
		if err != nil {
			return nil, domainerr.Serialization(wire.EventType, err)
		}
		out = append(out, StoredEvent{Sequence: seq, Event: ev, EventType: wire.EventType, MessageID: wire.MessageID, RecordedAt: wire.OccurredAt})

		meta, err := msg.Metadata()
		if err == nil && meta.NumPending == 0 {
			break
		}
	}
	return out, nil
}

func (s *JetStream) CurrentVersion(ctx context.Context, aggregateID person.ID) (uint64, error) {
	events, err := s.GetEvents(ctx, aggregateID)
	if err != nil {
		return 0, err
	}
	return uint64(len(events)), nil
}

func (s *JetStream) Subscribe(ctx context.Context, handler func(StoredEvent) error) error {
	sub, err := s.js.SubscribeSync(subject.EventsWildcard(subject.AggregatePerson).String(), nats.DeliverNew(), nats.AckExplicit())
	if err != nil {
		return domainerr.ExternalService("nats jetstream", err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		msg, err := sub.NextMsgWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		var wire wireEvent
		if err := msgpack.Unmarshal(msg.Data, &wire); err != nil {
			_ = msg.Nak()
			continue
		}
		id, err := person.ParseID(wire.PersonID)
		if err != nil {
			_ = msg.Term()
			continue
		}
		ev, err := s.codec.Decode(wire.EventType, wire.OccurredAt, id, wire.Payload)
		if err != nil {
			_ = msg.Term()
			continue
		}
		if err := handler(StoredEvent{Event: ev, EventType: wire.EventType, MessageID: wire.MessageID, RecordedAt: wire.OccurredAt}); err != nil {
			_ = msg.Nak()
			continue
		}
		_ = msg.Ack()
	}
}
