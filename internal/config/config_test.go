package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/config"
)

func TestLoadAppliesDefaultsWhenNoEnvSet(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, uint64(100), cfg.SnapshotFrequency)
}

func TestLoadHonorsEnvironmentOverride(t *testing.T) {
	t.Setenv("PERSON_ENGINE_NATS_URL", "nats://override:4222")
	t.Setenv("PERSON_ENGINE_SNAPSHOT_FREQUENCY", "250")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "nats://override:4222", cfg.NATSURL)
	assert.Equal(t, uint64(250), cfg.SnapshotFrequency)
}

func TestOverlaySecretsIsNoopWithoutVaultAddress(t *testing.T) {
	cfg := config.Config{PostgresDSN: "postgres://unchanged"}
	err := config.OverlaySecrets(&cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://unchanged", cfg.PostgresDSN)
}
