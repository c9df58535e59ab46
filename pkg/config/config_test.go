package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWhenNoFileFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "current", cfg.Generation)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.True(t, cfg.AutoClosing)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `
client:
  name: "My Flight App"
generation: legacy
dispatch_interval: 50ms
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "My Flight App", cfg.Client.Name)
	assert.Equal(t, "legacy", cfg.Generation)
	assert.Equal(t, 50*time.Millisecond, cfg.DispatchInterval)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestValidateRejectsBadGeneration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generation = "2024"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsZeroDispatchInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DispatchInterval = 0
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsMissingClientName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Client.Name = ""
	assert.Error(t, Validate(cfg))
}

func TestDefaultConfigPassesValidation(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestSaveConfigRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	cfg := DefaultConfig()
	cfg.Client.Name = "Saved App"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Saved App", loaded.Client.Name)
}

func TestSchemaProducesValidJSON(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, string(b), "SimConnect Client Configuration")
	assert.Contains(t, string(b), "generation")
}
