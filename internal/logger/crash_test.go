package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCrashContext_Setters(t *testing.T) {
	globalContext = &CrashContext{}

	SetBasePath("/tmp/test-gameforge")
	SetVersion("0.2.0-test")
	SetCommand("create")
	SetLastInput("  a snake game with power-ups  ")
	SetLastPrompt("You are the Designer agent.")

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	if globalContext.basePath != "/tmp/test-gameforge" {
		t.Errorf("basePath = %q, want %q", globalContext.basePath, "/tmp/test-gameforge")
	}
	if globalContext.version != "0.2.0-test" {
		t.Errorf("version = %q, want %q", globalContext.version, "0.2.0-test")
	}
	if globalContext.command != "create" {
		t.Errorf("command = %q, want %q", globalContext.command, "create")
	}
	if globalContext.lastInput != "a snake game with power-ups" {
		t.Errorf("lastInput = %q, want trimmed input", globalContext.lastInput)
	}
	if globalContext.lastPrompt != "You are the Designer agent." {
		t.Errorf("lastPrompt = %q, want prompt", globalContext.lastPrompt)
	}
}

func TestSetLastPrompt_Truncates(t *testing.T) {
	globalContext = &CrashContext{}

	SetLastPrompt(strings.Repeat("a", 3000))

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	if len(globalContext.lastPrompt) > 2100 {
		t.Errorf("prompt should be truncated, got length %d", len(globalContext.lastPrompt))
	}
	if !strings.Contains(globalContext.lastPrompt, "[truncated]") {
		t.Error("truncated prompt should carry the [truncated] marker")
	}
}

func TestCreateCrashLog(t *testing.T) {
	globalContext = &CrashContext{
		version:   "0.2.0",
		command:   "demo",
		lastInput: "snake",
	}

	log := createCrashLog("boom")

	if log.PanicValue != "boom" {
		t.Errorf("PanicValue = %q, want %q", log.PanicValue, "boom")
	}
	if log.Version != "0.2.0" {
		t.Errorf("Version = %q, want %q", log.Version, "0.2.0")
	}
	if log.Command != "demo" {
		t.Errorf("Command = %q, want %q", log.Command, "demo")
	}
	if log.LastInput != "snake" {
		t.Errorf("LastInput = %q, want %q", log.LastInput, "snake")
	}
	if log.StackTrace == "" {
		t.Error("StackTrace should not be empty")
	}
	if log.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}

func TestFormatCrashLog(t *testing.T) {
	log := CrashLog{
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Version:    "0.2.0",
		Command:    "create",
		PanicValue: "nil map write",
		StackTrace: "goroutine 1 [running]:\nmain.main()",
		LastInput:  "a tetris clone",
		LastPrompt: "You are the Developer agent.",
		GoVersion:  "go1.24.6",
		OS:         "linux",
		Arch:       "amd64",
	}

	formatted := formatCrashLog(log)

	for _, want := range []string{
		"GAMEFORGE CRASH LOG",
		"Timestamp: 2025-06-01T12:00:00Z",
		"Version:   0.2.0",
		"Command:   create",
		"Go:        go1.24.6",
		"OS/Arch:   linux/amd64",
		"PANIC VALUE",
		"nil map write",
		"STACK TRACE",
		"goroutine 1 [running]",
		"LAST USER INPUT",
		"a tetris clone",
		"LAST LLM PROMPT",
		"You are the Developer agent.",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("formatted log missing %q", want)
		}
	}
}

func TestWriteCrashLog(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".gameforge")
	globalContext = &CrashContext{basePath: basePath}

	log := CrashLog{
		Timestamp:  time.Now(),
		Version:    "0.2.0",
		Command:    "create",
		PanicValue: "boom",
		StackTrace: "stack",
		GoVersion:  "go1.24",
		OS:         "linux",
		Arch:       "amd64",
	}

	if err := writeCrashLog(log); err != nil {
		t.Fatalf("writeCrashLog() error = %v", err)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 crash log, got %d", len(logs))
	}

	content, err := os.ReadFile(logs[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "boom") {
		t.Error("crash log should contain the panic value")
	}
}

func TestCleanOldCrashLogs(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".gameforge")
	crashDir := filepath.Join(basePath, CrashLogDir)
	if err := os.MkdirAll(crashDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	globalContext = &CrashContext{basePath: basePath}

	for i := range MaxCrashLogs + 5 {
		name := filepath.Join(crashDir, fmt.Sprintf("crash_20250101_12%04d.log", i))
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	if err := cleanOldCrashLogs(crashDir); err != nil {
		t.Fatalf("cleanOldCrashLogs() error = %v", err)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs() error = %v", err)
	}
	if len(logs) != MaxCrashLogs {
		t.Errorf("expected %d crash logs after cleanup, got %d", MaxCrashLogs, len(logs))
	}

	// The oldest files go first
	for _, kept := range logs {
		if strings.Contains(kept, "120000.log") {
			t.Error("cleanup should remove the oldest log first")
		}
	}
}

func TestGetCrashLogPath(t *testing.T) {
	globalContext = &CrashContext{basePath: "/tmp/gf"}

	testTime := time.Date(2025, 1, 15, 14, 30, 45, 0, time.UTC)
	if got, want := getCrashLogPath(testTime), "/tmp/gf/crash_logs/crash_20250115_143045.log"; got != want {
		t.Errorf("getCrashLogPath() = %q, want %q", got, want)
	}
}

func TestGetCrashLogDir_Default(t *testing.T) {
	globalContext = &CrashContext{}

	if got, want := getCrashLogDir(), filepath.Join(".gameforge", CrashLogDir); got != want {
		t.Errorf("getCrashLogDir() = %q, want %q", got, want)
	}
}
