// Package config resolves GameForge settings from Viper, the environment,
// and built-in defaults. All default values should be defined here to ensure
// a single source of truth.
package config

// Application identity constants
const (
	// AppName is the binary and config-tree name.
	AppName = "gameforge"

	// EnvPrefix prefixes environment variable overrides
	// (GAMEFORGE_LLM_PROVIDER, GAMEFORGE_PIPELINE_MAXITERATIONS, ...).
	EnvPrefix = "GAMEFORGE"

	// ConfigFileBase is the project config file name without extension
	// (.gameforge.yaml, .gameforge.toml, ...).
	ConfigFileBase = ".gameforge"
)

// Default pipeline directories
const (
	// DefaultOutputDir receives delivered game bundles.
	DefaultOutputDir = "./games"

	// DefaultHistoryDir receives run history files when no explicit
	// directory is configured and no global fallback applies.
	DefaultHistoryDir = ".gameforge/runs"
)
