// Package config loads the engine's connection settings from the
// environment via spf13/viper, then overlays secrets fetched from
// HashiCorp Vault, following packages/go-core/config/vault.go's
// SecretManager pattern rather than the ad hoc secrets["X"].(string) calls
// scattered through the example pack's main.go files.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is every connection setting and tunable the engine's components
// need at startup.
type Config struct {
	NATSURL         string
	PostgresDSN     string
	RedisURL        string
	OTelEndpoint    string
	ServiceName     string
	VaultAddress    string
	VaultToken      string
	VaultSecretPath string

	SnapshotFrequency       uint64
	CircuitFailureThreshold int
	CircuitSuccessThreshold int
	CircuitResetTimeout     time.Duration
}

// Load reads defaults, overlays environment variables (PERSON_ENGINE_*),
// and returns the result. Vault overlay happens separately via
// OverlaySecrets, since it requires a live client, not just viper.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PERSON_ENGINE")
	v.AutomaticEnv()

	v.SetDefault("nats_url", "nats://localhost:4222")
	v.SetDefault("postgres_dsn", "postgres://localhost:5432/person_engine")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("otel_endpoint", "localhost:4317")
	v.SetDefault("service_name", "person-engine")
	v.SetDefault("vault_address", "")
	v.SetDefault("vault_token", "")
	v.SetDefault("vault_secret_path", "secret/data/person-engine")
	v.SetDefault("snapshot_frequency", 100)
	v.SetDefault("circuit_failure_threshold", 5)
	v.SetDefault("circuit_success_threshold", 2)
	v.SetDefault("circuit_reset_timeout_seconds", 30)

	cfg := Config{
		NATSURL:                 v.GetString("nats_url"),
		PostgresDSN:             v.GetString("postgres_dsn"),
		RedisURL:                v.GetString("redis_url"),
		OTelEndpoint:            v.GetString("otel_endpoint"),
		ServiceName:             v.GetString("service_name"),
		VaultAddress:            v.GetString("vault_address"),
		VaultToken:              v.GetString("vault_token"),
		VaultSecretPath:         v.GetString("vault_secret_path"),
		SnapshotFrequency:       v.GetUint64("snapshot_frequency"),
		CircuitFailureThreshold: v.GetInt("circuit_failure_threshold"),
		CircuitSuccessThreshold: v.GetInt("circuit_success_threshold"),
		CircuitResetTimeout:     time.Duration(v.GetInt64("circuit_reset_timeout_seconds")) * time.Second,
	}
	if cfg.NATSURL == "" {
		return Config{}, fmt.Errorf("config: PERSON_ENGINE_NATS_URL must not be empty")
	}
	return cfg, nil
}

// OverlaySecrets fetches the DSN/credential fields this config needs from
// Vault's KV v2 backend and overwrites cfg's corresponding fields in place,
// leaving any field absent from the secret untouched.
func OverlaySecrets(cfg *Config, secrets *SecretManager) error {
	if cfg.VaultAddress == "" {
		return nil
	}
	data, err := secrets.GetKV2(cfg.VaultSecretPath)
	if err != nil {
		return fmt.Errorf("config: overlay secrets: %w", err)
	}
	if dsn, ok := data["postgres_dsn"].(string); ok && dsn != "" {
		cfg.PostgresDSN = dsn
	}
	if url, ok := data["redis_url"].(string); ok && url != "" {
		cfg.RedisURL = url
	}
	if url, ok := data["nats_url"].(string); ok && url != "" {
		cfg.NATSURL = url
	}
	return nil
}
