package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

func TestLoad_Defaults(t *testing.T) {
	// Given: no config file
	path := filepath.Join(t.TempDir(), "missing.yaml")

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Storage.DuckDBPath)
	assert.Equal(t, 30*24*time.Hour, cfg.Storage.Retention)
	assert.Equal(t, time.Hour, cfg.Storage.PruneInterval)
	assert.Equal(t, "reports/", cfg.Publish.S3Prefix)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
	assert.Equal(t, domain.Inches(0.8), cfg.Theme().MarginX)
}

func TestLoad_FileAndEnv(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "insightdeck.yaml")
	content := `
server:
  port: 9090
  max_upload_mb: 5
  shutdown_timeout: 3s
storage:
  duckdb_path: /tmp/history.db
  retention: 168h
layout:
  gap: 0.3
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("INSIGHTDECK_PUBLISH_S3_BUCKET", "decks")
	t.Setenv("SERVER_HOST", "127.0.0.1")

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/tmp/history.db", cfg.Storage.DuckDBPath)
	assert.Equal(t, 7*24*time.Hour, cfg.Storage.Retention)
	assert.Equal(t, "decks", cfg.Publish.S3Bucket)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	assert.Equal(t, domain.Inches(0.3), cfg.Theme().Gap)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: 70000\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"negative gap", "layout:\n  gap: -1\n"},
		{"zero upload cap", "server:\n  max_upload_mb: 0\n"},
		{"negative retention", "storage:\n  retention: -1h\n"},
		{"malformed yaml", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "insightdeck.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)

			assert.Error(t, err)
		})
	}
}
