package eventstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/eventstore"
)

// TestAppendAtomicityConflictLeavesNoNewEventsVisible covers spec.md §8's
// append-atomicity property: a rejected Append must not leave any of its
// events visible to a subsequent GetEvents.
func TestAppendAtomicityConflictLeavesNoNewEventsVisible(t *testing.T) {
	store := eventstore.NewInMemory()
	ctx := context.Background()
	id := person.NewID()
	now := time.Now()

	require.NoError(t, store.Append(ctx, id, 0, []person.Event{person.NewPersonCreated(id, now, mustName(t))}))

	err := store.Append(ctx, id, 0, []person.Event{
		person.NewPersonDeactivated(id, now, "a", now),
		person.NewPersonDeactivated(id, now, "b", now),
	})
	require.Error(t, err)

	events, err := store.GetEvents(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 1, "the conflicting append's events must not appear")
	assert.Equal(t, "PersonCreated", events[0].EventType)
}

// TestAppendAtomicitySuccessMakesAllEventsVisibleInContiguousVersions
// covers the success half of the same property: an ok Append of n events
// makes all n visible at contiguous version slots.
func TestAppendAtomicitySuccessMakesAllEventsVisibleInContiguousVersions(t *testing.T) {
	store := eventstore.NewInMemory()
	ctx := context.Background()
	id := person.NewID()
	now := time.Now()

	require.NoError(t, store.Append(ctx, id, 0, []person.Event{
		person.NewPersonCreated(id, now, mustName(t)),
		person.NewPersonDeactivated(id, now, "batched", now),
	}))

	events, err := store.GetEvents(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].Sequence)
	assert.Equal(t, uint64(2), events[1].Sequence)
}

// TestVersionMonotonicityAcrossMultipleAppends covers "get_events is
// strictly increasing in version" across several Append calls.
func TestVersionMonotonicityAcrossMultipleAppends(t *testing.T) {
	store := eventstore.NewInMemory()
	ctx := context.Background()
	id := person.NewID()
	now := time.Now()

	require.NoError(t, store.Append(ctx, id, 0, []person.Event{person.NewPersonCreated(id, now, mustName(t))}))
	require.NoError(t, store.Append(ctx, id, 1, []person.Event{person.NewSkillAdded(id, now, "s1", "Go", "Expert", nil)}))
	require.NoError(t, store.Append(ctx, id, 2, []person.Event{person.NewSkillAdded(id, now, "s2", "Rust", "Intermediate", nil)}))

	events, err := store.GetEvents(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Sequence, events[i-1].Sequence)
	}
}

// TestAppendAtomicityIsSafeUnderConcurrentWriters exercises the same
// property under concurrent writers racing on the same expected_version:
// exactly one of them should win, and GetEvents must never show a partial
// interleaving of the loser's events.
func TestAppendAtomicityIsSafeUnderConcurrentWriters(t *testing.T) {
	store := eventstore.NewInMemory()
	ctx := context.Background()
	id := person.NewID()
	now := time.Now()
	require.NoError(t, store.Append(ctx, id, 0, []person.Event{person.NewPersonCreated(id, now, mustName(t))}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := store.Append(ctx, id, 1, []person.Event{
				person.NewSkillAdded(id, now, "concurrent", "Go", "Expert", nil),
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one concurrent writer at the same expected_version should win")

	events, err := store.GetEvents(ctx, id)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
