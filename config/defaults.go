package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Store defaults
	v.SetDefault("store.path", "gedbridge.db")
	v.SetDefault("store.guarded_processes", []string{"tmg9.exe", "tmg8.exe", "tmg7.exe"})

	// Match defaults
	v.SetDefault("match.narrow_tolerance", 1) // Event type known: same or adjacent year
	v.SetDefault("match.wide_tolerance", 5)   // Event type unknown: cast a wider net

	// Inject defaults
	v.SetDefault("inject.languages", []string{"ENGLISH", "FRENCH"})
}

// BindSensitiveEnvVars explicitly binds path configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("store.path", "GEDBRIDGE_STORE_PATH")
	v.BindEnv("source.path", "GEDBRIDGE_SOURCE_PATH")
	v.BindEnv("mapping.path", "GEDBRIDGE_MAPPING_PATH")
}

// GetStorePath returns the configured store path with fallback
func (c *Config) GetStorePath() string {
	if c.Store.Path == "" {
		return "gedbridge.db"
	}
	return c.Store.Path
}

// GetGuardedProcesses returns process names that block store writes
func (c *Config) GetGuardedProcesses() []string {
	if len(c.Store.GuardedProcesses) == 0 {
		return []string{"tmg9.exe", "tmg8.exe", "tmg7.exe"}
	}
	return c.Store.GuardedProcesses
}

// GetLanguages returns the languages phrases are generated for
func (c *Config) GetLanguages() []string {
	if len(c.Inject.Languages) == 0 {
		return []string{"ENGLISH", "FRENCH"}
	}
	return c.Inject.Languages
}

// GetMatchConfig returns the match configuration with defaults applied
func (c *Config) GetMatchConfig() MatchConfig {
	cfg := c.Match
	if cfg.NarrowTolerance == 0 {
		cfg.NarrowTolerance = 1
	}
	if cfg.WideTolerance == 0 {
		cfg.WideTolerance = 5
	}
	return cfg
}
