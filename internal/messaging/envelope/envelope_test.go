package envelope_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arc-self/person-engine/internal/messaging/envelope"
)

func TestNewIdentitySelfCauses(t *testing.T) {
	now := time.Now().UTC()
	id := envelope.NewIdentity(envelope.ActorUser("alice"), now)
	assert.Equal(t, id.MessageID.String(), string(id.CorrelationID))
	assert.Equal(t, id.MessageID.String(), string(id.CausationID))
}

func TestCausedByPropagatesCorrelationAndChainsCausation(t *testing.T) {
	now := time.Now().UTC()
	root := envelope.NewIdentity(envelope.ActorSystem("command-processor"), now)
	child := root.CausedBy(now.Add(time.Millisecond))

	assert.Equal(t, root.CorrelationID, child.CorrelationID)
	assert.Equal(t, string(child.CausationID), root.MessageID.String())
	assert.NotEqual(t, root.MessageID, child.MessageID)

	grandchild := child.CausedBy(now.Add(2 * time.Millisecond))
	assert.Equal(t, root.CorrelationID, grandchild.CorrelationID)
	assert.Equal(t, string(grandchild.CausationID), child.MessageID.String())
}

func TestWithMetadataDoesNotMutateOriginal(t *testing.T) {
	now := time.Now().UTC()
	id := envelope.NewIdentity(envelope.ActorUnknown, now)
	withMeta := id.WithMetadata("trace_id", "abc123")

	assert.Empty(t, id.Metadata)
	assert.Equal(t, "abc123", withMeta.Metadata["trace_id"])
}

func TestParseMessageIDRoundTripsNewMessageID(t *testing.T) {
	id := envelope.NewMessageID()
	parsed, err := envelope.ParseMessageID(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseMessageIDRejectsGarbage(t *testing.T) {
	_, err := envelope.ParseMessageID("not-a-uuid")
	assert.Error(t, err)
}
