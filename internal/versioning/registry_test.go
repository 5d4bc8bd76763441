package versioning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/versioning"
)

func TestMigrateToCurrentReturnsUnchangedWhenNoStepRegistered(t *testing.T) {
	r := versioning.NewRegistry()
	payload := map[string]interface{}{"legal_name": "Ada Lovelace"}

	out, version, err := r.MigrateToCurrent("PersonCreated", "2.0", payload)
	require.NoError(t, err)
	assert.Equal(t, "2.0", version)
	assert.Equal(t, payload, out)
}

func TestMigrateToCurrentFollowsMultiStepChain(t *testing.T) {
	r := versioning.NewRegistry()
	r.Register("Widget", "1.0", "2.0", func(p map[string]interface{}) (map[string]interface{}, error) {
		p = cloneMap(p)
		p["step"] = "one"
		return p, nil
	})
	r.Register("Widget", "2.0", "3.0", func(p map[string]interface{}) (map[string]interface{}, error) {
		p = cloneMap(p)
		p["step"] = "two"
		return p, nil
	})

	out, version, err := r.MigrateToCurrent("Widget", "1.0", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "3.0", version)
	assert.Equal(t, "two", out["step"])
}

func TestDefaultRegistryMigratesPersonCreatedV1ToV2(t *testing.T) {
	r := versioning.DefaultRegistry()
	payload := map[string]interface{}{
		"legal_name": "Ada Lovelace",
		"created_at": "2020-01-01T00:00:00Z",
	}

	out, version, err := r.MigrateToCurrent("PersonCreated", "1.0", payload)
	require.NoError(t, err)
	assert.Equal(t, "2.0", version)

	_, hasTopLevelCreatedAt := out["created_at"]
	assert.False(t, hasTopLevelCreatedAt)

	metadata, ok := out["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2020-01-01T00:00:00Z", metadata["created_at"])
	assert.Equal(t, "", metadata["correlation_id"])
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
