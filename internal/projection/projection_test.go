package projection_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection"
)

func mustName(t *testing.T) person.Name {
	t.Helper()
	n, err := person.NewNameBuilder().Given("Ada").Family("Lovelace").Build()
	require.NoError(t, err)
	return n
}

func mustEnvelope(t *testing.T) envelope.Envelope {
	t.Helper()
	return envelope.Envelope{Identity: envelope.NewIdentity(envelope.ActorSystem("test"), time.Now())}
}

func TestSummaryAppliesCreatedThenDeactivated(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	s := projection.NewSummary(q)
	id := person.NewID()
	now := time.Now()

	require.NoError(t, s.Apply(ctx, mustEnvelope(t), person.NewPersonCreated(id, now, mustName(t))))
	require.NoError(t, s.Apply(ctx, mustEnvelope(t), person.NewPersonDeactivated(id, now, "closed", now)))

	row, err := q.GetSummary(ctx, id.String())
	require.NoError(t, err)
	assert.False(t, row.Active)
	assert.Equal(t, "Ada Lovelace", row.DisplayName)
}

func TestSearchIndexesNameTokensAndReindexesOnUpdate(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	s := projection.NewSearch(q)
	id := person.NewID()
	now := time.Now()

	require.NoError(t, s.Apply(ctx, mustEnvelope(t), person.NewPersonCreated(id, now, mustName(t))))
	ids, err := q.SearchByToken(ctx, "ada")
	require.NoError(t, err)
	assert.Contains(t, ids, id.String())

	newName, err := person.NewNameBuilder().Given("Grace").Family("Hopper").Build()
	require.NoError(t, err)
	require.NoError(t, s.Apply(ctx, mustEnvelope(t), person.NewNameUpdated(id, now, newName)))

	stale, err := q.SearchByToken(ctx, "ada")
	require.NoError(t, err)
	assert.NotContains(t, stale, id.String())

	fresh, err := q.SearchByToken(ctx, "grace")
	require.NoError(t, err)
	assert.Contains(t, fresh, id.String())
}

func TestSkillsUpsertsByInstanceID(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	s := projection.NewSkills(q)
	id := person.NewID()
	now := time.Now()

	require.NoError(t, s.Apply(ctx, mustEnvelope(t), person.NewSkillAdded(id, now, "skill-1", "Go", "Expert", nil)))

	rows, err := q.ListSkills(ctx, id.String())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Go", rows[0].Name)
}

func TestNetworkRecordsEdgeOnBothSidesOfMerge(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	n := projection.NewNetwork(q)
	source := person.NewID()
	target := person.NewID()
	now := time.Now()

	require.NoError(t, n.Apply(ctx, mustEnvelope(t), person.NewPersonMergedInto(source, now, target)))

	sourceEdges, err := q.ListNetworkEdges(ctx, source.String())
	require.NoError(t, err)
	require.Len(t, sourceEdges, 1)
	assert.Equal(t, target.String(), sourceEdges[0].PeerID)

	targetEdges, err := q.ListNetworkEdges(ctx, target.String())
	require.NoError(t, err)
	require.Len(t, targetEdges, 1)
	assert.Equal(t, source.String(), targetEdges[0].PeerID)
}

func TestTimelineAppendsOneEntryPerEvent(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	tl := projection.NewTimeline(q)
	id := person.NewID()
	now := time.Now()

	require.NoError(t, tl.Apply(ctx, mustEnvelope(t), person.NewPersonCreated(id, now, mustName(t))))
	require.NoError(t, tl.Apply(ctx, mustEnvelope(t), person.NewPersonDeactivated(id, now.Add(time.Minute), "closed", now)))

	rows, err := q.ListTimeline(ctx, id.String())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PersonCreated", rows[0].EventType)
	assert.Equal(t, "PersonDeactivated", rows[1].EventType)
}

func TestComponentStoreUpsertsEmailByInstanceID(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	cs := projection.NewComponentStore(q)
	id := person.NewID()
	now := time.Now()

	require.NoError(t, cs.Apply(ctx, mustEnvelope(t), person.NewEmailAdded(id, now, "email-1", "ada@example.com", true)))

	row, err := q.GetComponent(ctx, id.String(), string(person.ComponentEmail), "email-1")
	require.NoError(t, err)
	assert.NotEmpty(t, row.Payload)
}
