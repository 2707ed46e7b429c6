// Package config defines the shell-layer configuration struct and its
// loading rules. It follows the plain encoding/json pattern used by the
// wider example corpus's own service entrypoint rather than a
// flag/viper-based framework: a small JSON file, a documented default, and
// an optional environment variable naming an override file.
//
// None of this feeds into the core engine's invariants (§6 of the design):
// the snapshot path defaults to "database.db" regardless of configuration,
// and the core packages (schema, storage, persistence, sqlfront, planner,
// executor) never read an environment variable or a config file themselves.
package config

import (
	"encoding/json"
	"os"
)

// EnvOverridePath is the environment variable consulted by
// LoadConfigOrDefault to locate an optional JSON override file. It governs
// shell cosmetics only (prompt, log level, cache sizing), never the
// snapshot path's hard default.
const EnvOverridePath = "HYPERVAULT_CONFIG"

// CacheConfig controls the optional planner plan cache.
type CacheConfig struct {
	Enabled    bool `json:"enabled"`
	MaxEntries int  `json:"max_entries"`
	TTLSeconds int  `json:"ttl_seconds"`
}

// Config is the shell binary's full configuration.
type Config struct {
	SnapshotPath string      `json:"snapshot_path"`
	Prompt       string      `json:"prompt"`
	LogLevel     string      `json:"log_level"`
	PlanCache    CacheConfig `json:"plan_cache"`
}

// DefaultConfig returns the hard-coded defaults used when no override file
// is found.
func DefaultConfig() *Config {
	return &Config{
		SnapshotPath: "database.db",
		Prompt:       "hypervault> ",
		LogLevel:     "info",
		PlanCache: CacheConfig{
			Enabled:    true,
			MaxEntries: 256,
			TTLSeconds: 30,
		},
	}
}

// LoadConfig reads and unmarshals a JSON config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault checks overridePath first (if non-empty), then the
// HYPERVAULT_CONFIG environment variable, then falls back to
// DefaultConfig(). Any error reading or parsing a named file falls back to
// defaults rather than aborting startup.
func LoadConfigOrDefault(overridePath string) *Config {
	candidates := []string{}
	if overridePath != "" {
		candidates = append(candidates, overridePath)
	}
	if env := os.Getenv(EnvOverridePath); env != "" {
		candidates = append(candidates, env)
	}

	for _, path := range candidates {
		if cfg, err := LoadConfig(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}
