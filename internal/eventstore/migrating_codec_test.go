package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/eventstore"
	"github.com/arc-self/person-engine/internal/versioning"
)

func TestMigratingCodecPassesThroughPayloadWithoutVersionField(t *testing.T) {
	codec := eventstore.NewMigratingCodec(versioning.DefaultRegistry())
	id := person.NewID()
	now := time.Now()
	name, err := person.NewNameBuilder().Given("Ada").Family("Lovelace").Build()
	require.NoError(t, err)

	created := person.NewPersonCreated(id, now, name)
	payload, err := codec.EncodePayload(created)
	require.NoError(t, err)

	decoded, err := codec.Decode("PersonCreated", now, id, payload)
	require.NoError(t, err)
	assert.Equal(t, created, decoded)
}

func TestMigratingCodecMigratesLegacyPersonCreatedPayload(t *testing.T) {
	codec := eventstore.NewMigratingCodec(versioning.DefaultRegistry())
	id := person.NewID()
	now := time.Now()

	legacy := map[string]interface{}{
		"version": "1.0",
		"LegalName": map[string]interface{}{
			"GivenNames":  []string{"Ada"},
			"FamilyNames": []string{"Lovelace"},
		},
		"created_at": now,
	}
	payload, err := msgpack.Marshal(legacy)
	require.NoError(t, err)

	decoded, err := codec.Decode("PersonCreated", now, id, payload)
	require.NoError(t, err)

	created, ok := decoded.(person.PersonCreated)
	require.True(t, ok)
	assert.Equal(t, []string{"Ada"}, created.LegalName.GivenNames)
	assert.Equal(t, []string{"Lovelace"}, created.LegalName.FamilyNames)
}
