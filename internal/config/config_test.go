package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "bombbusters.db", cfg.Storage.DSN)
	assert.Empty(t, cfg.Catalog.Missions)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
storage:
  driver: postgres
  dsn: postgres://localhost/bombbusters
`), 0o600))

	t.Setenv("BOMBBUSTERS_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level, "environment overrides the file")
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/bombbusters", cfg.Storage.DSN)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: mysql\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Storage: StorageConfig{Driver: "sqlite", DSN: "x.db"},
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Logging.Level = "verbose"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Logging.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Storage.DSN = ""
	assert.Error(t, bad.Validate())
}
