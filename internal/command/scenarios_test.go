package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arc-self/person-engine/internal/command"
	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/eventstore"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/repository"
	"github.com/arc-self/person-engine/internal/snapshot"
)

// This file covers the six end-to-end scenarios of spec.md §8 against
// command.Processor. "Deactivate blocks updates" is already covered by
// TestHandleOnDeactivatedPersonReturnsValidationError in processor_test.go;
// the other five are below.

func newProcessorWithRepo() (*command.Processor, *repository.Repository) {
	repo := repository.New(eventstore.NewInMemory(), snapshot.NewInMemory(), 0, func() time.Time { return time.Now() })
	return command.NewProcessor(repo, &recordingPublisher{}, zap.NewNop()), repo
}

func TestCreateThenRecordAttributeIsObservable(t *testing.T) {
	proc, repo := newProcessorWithRepo()
	ctx := context.Background()
	id := person.NewID()
	now := time.Now()
	identity := envelope.NewIdentity(envelope.ActorUser("u1"), now)

	_, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewCreatePerson(id, mustName(t), now))
	require.NoError(t, err)

	attr := person.Attribute{
		Type:  person.NewAttributeType(person.CategoryPhysical, "height"),
		Value: person.LengthValue(1.8),
		Temporal: person.Temporal{
			RecordedAt: now,
			ValidFrom:  &now,
		},
		Provenance: person.Provenance{Source: person.Source{Kind: person.SourceSelfReported}, Confidence: person.ConfidenceLikely},
	}
	result, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewRecordAttribute(id, attr, now))
	require.NoError(t, err)
	assert.Len(t, result.Events, 1)

	state, version, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	require.Len(t, state.Attributes, 1)
	assert.Equal(t, person.LengthValue(1.8), state.Attributes[0].Value)
}

func TestBirthDateCannotBeSetTwice(t *testing.T) {
	proc, _ := newProcessor()
	ctx := context.Background()
	id := person.NewID()
	now := time.Now()
	identity := envelope.NewIdentity(envelope.ActorUser("u1"), now)

	_, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewCreatePerson(id, mustName(t), now))
	require.NoError(t, err)

	_, err = proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewSetBirthDate(id, now.AddDate(-30, 0, 0), now))
	require.NoError(t, err)

	_, err = proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewSetBirthDate(id, now.AddDate(-31, 0, 0), now))
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))
}

func TestMergeIsTerminalAndRejectsFurtherCommands(t *testing.T) {
	proc, _ := newProcessor()
	ctx := context.Background()
	id := person.NewID()
	target := person.NewID()
	now := time.Now()
	identity := envelope.NewIdentity(envelope.ActorUser("u1"), now)

	_, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewCreatePerson(id, mustName(t), now))
	require.NoError(t, err)

	result, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewMergePersons(id, target, "duplicate", now))
	require.NoError(t, err)
	assert.Len(t, result.Events, 1)

	_, err = proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewUpdateName(id, mustName(t), now))
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))

	_, err = proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewMergePersons(id, target, "again", now))
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))
}

func TestOptimisticConflictIsRetriedUntilItSucceeds(t *testing.T) {
	ctx := context.Background()
	store := &conflictOnceStore{Store: eventstore.NewInMemory()}
	repo := repository.New(store, snapshot.NewInMemory(), 0, func() time.Time { return time.Now() })
	pub := &recordingPublisher{}
	proc := command.NewProcessor(repo, pub, zap.NewNop())

	id := person.NewID()
	now := time.Now()
	identity := envelope.NewIdentity(envelope.ActorUser("u1"), now)

	_, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewCreatePerson(id, mustName(t), now))
	require.NoError(t, err)

	result, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewDeactivatePerson(id, "retry-me", now))
	require.NoError(t, err, "Handle must retry past the injected conflict and still succeed")
	assert.Len(t, result.Events, 1)
	assert.Equal(t, 1, store.conflictsInjected, "exactly one conflict should have been injected before success")
}

func TestAttributeTimeTravelReturnsTheSliceValidAtEachDate(t *testing.T) {
	proc, repo := newProcessorWithRepo()
	ctx := context.Background()
	id := person.NewID()
	t1 := time.Now()
	t2 := t1.Add(24 * time.Hour)
	identity := envelope.NewIdentity(envelope.ActorUser("u1"), t1)

	_, err := proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewCreatePerson(id, mustName(t), t1))
	require.NoError(t, err)

	attrType := person.NewAttributeType(person.CategoryIdentifying, "legal_name_confidence")
	original := person.Attribute{
		Type:       attrType,
		Value:      person.TextValue("original"),
		Temporal:   person.Temporal{RecordedAt: t1, ValidFrom: &t1},
		Provenance: person.Provenance{Source: person.Source{Kind: person.SourceSelfReported}, Confidence: person.ConfidenceLikely},
	}
	_, err = proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewRecordAttribute(id, original, t1))
	require.NoError(t, err)

	updated := person.Attribute{
		Type:       attrType,
		Value:      person.TextValue("updated"),
		Temporal:   person.Temporal{RecordedAt: t2, ValidFrom: &t2},
		Provenance: person.Provenance{Source: person.Source{Kind: person.SourceSelfReported}, Confidence: person.ConfidenceCertain},
	}
	_, err = proc.Handle(ctx, envelope.ActorUser("u1"), identity, person.NewUpdateAttribute(id, attrType, updated, t2))
	require.NoError(t, err)

	state, _, err := repo.Load(ctx, id)
	require.NoError(t, err)

	beforeUpdate := state.ObserveAt(t1.Add(1 * time.Hour))
	require.Len(t, beforeUpdate, 1)
	assert.Equal(t, person.TextValue("original"), beforeUpdate[0].Value)

	afterUpdate := state.ObserveAt(t2.Add(1 * time.Hour))
	require.Len(t, afterUpdate, 1)
	assert.Equal(t, person.TextValue("updated"), afterUpdate[0].Value)
}

// conflictOnceStore wraps a Store and forces exactly one ConflictError on
// the second Append call it sees (the test's DeactivatePerson command, not
// the CreatePerson call that precedes it), simulating a concurrent writer
// winning the race the command processor is about to lose.
type conflictOnceStore struct {
	eventstore.Store
	calls             int
	conflictsInjected int
}

func (s *conflictOnceStore) Append(ctx context.Context, aggregateID person.ID, expectedVersion uint64, events []person.Event) error {
	s.calls++
	if s.calls == 2 {
		s.conflictsInjected++
		return domainerr.Conflict(aggregateID.String(), expectedVersion+1, expectedVersion)
	}
	return s.Store.Append(ctx, aggregateID, expectedVersion, events)
}
