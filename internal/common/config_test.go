package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 3*time.Second, cfg.Database.DialTimeout)
	assert.Equal(t, "us", cfg.DocumentAI.Location)
	assert.Equal(t, "output_data.json", cfg.Output.SnapshotPath)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/invoice?sslmode=disable")
	t.Setenv("DOCAI_PROCESSOR_ID", "abc123")
	t.Setenv("BATCH_WORKERS", "2")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/invoice?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, "abc123", cfg.DocumentAI.ProcessorID)
	assert.Equal(t, 2, cfg.Batch.Workers)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "db:\n  driver: sqlite\n  url: file:invoice.db\ndocai:\n  project_id: proj\n  timeout: 30s\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:invoice.db", cfg.Database.DSN)
	assert.Equal(t, "proj", cfg.DocumentAI.ProjectID)
	assert.Equal(t, 30*time.Second, cfg.DocumentAI.Timeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "postgres"}}
	err := cfg.ValidateDatabase()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "db.url")

	cfg.Database.Driver = "sqlite"
	assert.NoError(t, cfg.ValidateDatabase())

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.ValidateDatabase())

	err = cfg.ValidateDocumentAI()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docai.project_id")
	assert.Contains(t, err.Error(), "docai.processor_id")
}
