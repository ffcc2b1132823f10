package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
source:
  uri: "mongodb://localhost:27017"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dealer_ops", cfg.Source.Database)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 500, cfg.Sync.BatchSize)
	assert.Equal(t, 1000, cfg.Sync.PageSize)
	assert.Equal(t, "000000", cfg.Sync.DefaultPayeeNumber)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Monitoring.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  uri: "mongodb://localhost:27017"
  database: "claims_prod"
sync:
  batch_size: 250
  default_payee_number: "999999"
monitoring:
  enabled: true
  metrics_port: 2112
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claims_prod", cfg.Source.Database)
	assert.Equal(t, 250, cfg.Sync.BatchSize)
	assert.Equal(t, "999999", cfg.Sync.DefaultPayeeNumber)
	assert.True(t, cfg.Monitoring.Enabled)
	assert.Equal(t, 2112, cfg.Monitoring.MetricsPort)
}

func TestLoad_EnvOverridesCredentials(t *testing.T) {
	t.Setenv("SOURCE_MONGO_URI", "mongodb://env-host:27017")
	t.Setenv("WAREHOUSE_DB_PASSWORD", "env-secret")

	path := writeConfig(t, `
database:
  host: "db.internal"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env-host:27017", cfg.Source.URI)
	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoad_MissingSourceURI(t *testing.T) {
	path := writeConfig(t, `
database:
  host: "db.internal"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.uri is required")
}

func TestLoad_RejectsNonPositiveBatchSize(t *testing.T) {
	path := writeConfig(t, `
source:
  uri: "mongodb://localhost:27017"
sync:
  batch_size: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")
}
