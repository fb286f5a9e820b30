package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory
// (~/.gameforge). This is the source of truth for where global config lives.
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+AppName), nil
}

// GetHistoryBasePath returns the directory run history is stored in.
// Resolution order (first match wins):
// 1. Explicit config via "pipeline.historyDir" (Viper/env/flag)
// 2. Local project directory: .gameforge/runs (if it exists)
// 3. XDG_DATA_HOME/gameforge/runs (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.gameforge/runs
func GetHistoryBasePath() string {
	// 1. Check Viper config (flags/config file/env)
	if path := viper.GetString("pipeline.historyDir"); path != "" {
		return path
	}

	// 2. Check for a local runs directory. This keeps runs per-project
	// when the command is invoked from inside one.
	if info, err := os.Stat(DefaultHistoryDir); err == nil && info.IsDir() {
		return DefaultHistoryDir
	}

	// 3. Check XDG_DATA_HOME
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName, "runs")
	}

	// 4. Fallback to ~/.gameforge/runs (global)
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return DefaultHistoryDir
	}
	return filepath.Join(dir, "runs")
}
