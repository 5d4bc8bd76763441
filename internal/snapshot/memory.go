package snapshot

import (
	"context"
	"sync"

	"github.com/arc-self/person-engine/internal/domain/person"
)

// InMemory keeps the single most recent Record per aggregate, used by
// repository unit tests.
type InMemory struct {
	mu        sync.Mutex
	snapshots map[person.ID]Record
}

func NewInMemory() *InMemory {
	return &InMemory{snapshots: make(map[person.ID]Record)}
}

func (s *InMemory) Put(ctx context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[record.AggregateID] = record
	return nil
}

func (s *InMemory) Latest(ctx context.Context, aggregateID person.ID) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.snapshots[aggregateID]
	return r, ok, nil
}
