package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "database.db", cfg.SnapshotPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.PlanCache.Enabled)
	assert.Equal(t, 256, cfg.PlanCache.MaxEntries)
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfigOverridesDefaultsPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prompt":"db> ","log_level":"debug"}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db> ", cfg.Prompt)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Fields absent from the override file retain the default.
	assert.Equal(t, "database.db", cfg.SnapshotPath)
}

func TestLoadConfigOrDefaultPrefersExplicitOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prompt":"explicit> "}`), 0o644))

	cfg := LoadConfigOrDefault(path)
	assert.Equal(t, "explicit> ", cfg.Prompt)
}

func TestLoadConfigOrDefaultFallsBackToEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prompt":"fromenv> "}`), 0o644))

	t.Setenv(EnvOverridePath, path)
	cfg := LoadConfigOrDefault("")
	assert.Equal(t, "fromenv> ", cfg.Prompt)
}

func TestLoadConfigOrDefaultFallsBackToDefaultsWhenNothingResolves(t *testing.T) {
	t.Setenv(EnvOverridePath, "")
	cfg := LoadConfigOrDefault("")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOrDefaultIgnoresUnreadableOverride(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, DefaultConfig(), cfg)
}
