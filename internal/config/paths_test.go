package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestGetHistoryBasePath_ExplicitConfigWins(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	viper.Set("pipeline.historyDir", "/explicit/runs")

	if got := GetHistoryBasePath(); got != "/explicit/runs" {
		t.Errorf("GetHistoryBasePath() = %q, want explicit config value", got)
	}
}

func TestGetHistoryBasePath_XDGFallback(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	// Run from a directory without a local .gameforge/runs.
	t.Chdir(t.TempDir())

	want := filepath.Join("/xdg/data", AppName, "runs")
	if got := GetHistoryBasePath(); got != want {
		t.Errorf("GetHistoryBasePath() = %q, want %q", got, want)
	}
}

func TestGetHistoryBasePath_GlobalFallback(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("XDG_DATA_HOME", "")
	t.Chdir(t.TempDir())

	original := GetGlobalConfigDir
	defer func() { GetGlobalConfigDir = original }()
	GetGlobalConfigDir = func() (string, error) {
		return "/home/tester/.gameforge", nil
	}

	want := filepath.Join("/home/tester/.gameforge", "runs")
	if got := GetHistoryBasePath(); got != want {
		t.Errorf("GetHistoryBasePath() = %q, want %q", got, want)
	}
}

func TestGetHistoryBasePath_LocalDirPreferred(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll(filepath.Join(dir, DefaultHistoryDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if got := GetHistoryBasePath(); got != DefaultHistoryDir {
		t.Errorf("GetHistoryBasePath() = %q, want the local %q", got, DefaultHistoryDir)
	}
}

func TestGetHistoryBasePath_GlobalDirError(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("XDG_DATA_HOME", "")
	t.Chdir(t.TempDir())

	original := GetGlobalConfigDir
	defer func() { GetGlobalConfigDir = original }()
	GetGlobalConfigDir = func() (string, error) {
		return "", errors.New("test error: cannot get home dir")
	}

	if got := GetHistoryBasePath(); got != DefaultHistoryDir {
		t.Errorf("GetHistoryBasePath() = %q, want the local default on error", got)
	}
}
