package eventstore

import (
	"context"
	"sync"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
)

// InMemory is a Store backed by a map, used by command-processor and
// repository unit tests that don't need a running JetStream server.
type InMemory struct {
	mu       sync.Mutex
	streams  map[person.ID][]StoredEvent
	subs     []func(StoredEvent) error
}

func NewInMemory() *InMemory {
	return &InMemory{streams: make(map[person.ID][]StoredEvent)}
}

func (s *InMemory) Append(ctx context.Context, aggregateID person.ID, expectedVersion uint64, events []person.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := uint64(len(s.streams[aggregateID]))
	if current != expectedVersion {
		return domainerr.Conflict(aggregateID.String(), current, expectedVersion)
	}

	stored := make([]StoredEvent, 0, len(events))
	for _, e := range events {
		current++
		se := StoredEvent{
			Sequence:   current,
			Event:      e,
			EventType:  e.EventType(),
			MessageID:  envelope.NewMessageID().String(),
			RecordedAt: e.OccurredAt(),
		}
		stored = append(stored, se)
	}
	s.streams[aggregateID] = append(s.streams[aggregateID], stored...)

	for _, se := range stored {
		for _, sub := range s.subs {
			if err := sub(se); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *InMemory) GetEvents(ctx context.Context, aggregateID person.ID) ([]StoredEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredEvent, len(s.streams[aggregateID]))
	copy(out, s.streams[aggregateID])
	return out, nil
}

func (s *InMemory) GetEventsAfter(ctx context.Context, aggregateID person.ID, afterSequence uint64) ([]StoredEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.streams[aggregateID]
	out := make([]StoredEvent, 0, len(all))
	for _, se := range all {
		if se.Sequence > afterSequence {
			out = append(out, se)
		}
	}
	return out, nil
}

func (s *InMemory) CurrentVersion(ctx context.Context, aggregateID person.ID) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(len(s.streams[aggregateID])), nil
}

// Subscribe registers handler for every future Append call, then blocks
// until ctx is cancelled, as the Store contract describes. Delivery is
// synchronous: Append invokes each registered handler inline, without the
// asynchronous delivery JetStream provides.
func (s *InMemory) Subscribe(ctx context.Context, handler func(StoredEvent) error) error {
	s.mu.Lock()
	s.subs = append(s.subs, handler)
	s.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}
