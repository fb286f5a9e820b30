package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestQuoteYAMLValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple string no quoting needed",
			input: "simple",
			want:  "simple",
		},
		{
			name:  "string with colon",
			input: "has:colon",
			want:  `"has:colon"`,
		},
		{
			name:  "string with hash",
			input: "has#hash",
			want:  `"has#hash"`,
		},
		{
			name:  "string with double quote",
			input: `has"quote`,
			want:  `"has\"quote"`,
		},
		{
			name:  "complex API key with special chars",
			input: "sk-proj-abc:def#123",
			want:  `"sk-proj-abc:def#123"`,
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteYAMLValue(tt.input)
			if got != tt.want {
				t.Errorf("quoteYAMLValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func overrideGlobalConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	original := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) {
		return tmpDir, nil
	}
	t.Cleanup(func() { GetGlobalConfigDir = original })
	return tmpDir
}

func TestSaveGlobalLLMConfig_Validation(t *testing.T) {
	overrideGlobalConfigDir(t)

	tests := []struct {
		name     string
		provider string
		key      string
		wantErr  string
	}{
		{
			name:     "empty provider",
			provider: "",
			key:      "some-key",
			wantErr:  "provider cannot be empty",
		},
		{
			name:     "empty key for keyed provider",
			provider: "openai",
			key:      "",
			wantErr:  "API key cannot be empty",
		},
		{
			name:     "unknown provider",
			provider: "watsonx",
			key:      "some-key",
			wantErr:  "unsupported provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SaveGlobalLLMConfig(tt.provider, "", tt.key)
			if err == nil {
				t.Fatalf("SaveGlobalLLMConfig(%q) expected error, got nil", tt.provider)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("SaveGlobalLLMConfig(%q) error = %v, want containing %q", tt.provider, err, tt.wantErr)
			}
		})
	}
}

func TestSaveGlobalLLMConfig_NewFile(t *testing.T) {
	tmpDir := overrideGlobalConfigDir(t)

	err := SaveGlobalLLMConfig("gemini", "", "test-api-key:with#special")
	if err != nil {
		t.Fatalf("SaveGlobalLLMConfig failed: %v", err)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	contentStr := string(content)

	if !strings.Contains(contentStr, "provider: gemini") {
		t.Errorf("Config missing 'provider: gemini', got:\n%s", contentStr)
	}
	if !strings.Contains(contentStr, "modelName: gemini-2.0-flash") {
		t.Errorf("Config missing default gemini model, got:\n%s", contentStr)
	}
	if !strings.Contains(contentStr, `"test-api-key:with#special"`) {
		t.Errorf("Config should have quoted API key, got:\n%s", contentStr)
	}
}

func TestSaveGlobalLLMConfig_OllamaNeedsNoKey(t *testing.T) {
	tmpDir := overrideGlobalConfigDir(t)

	if err := SaveGlobalLLMConfig("ollama", "llama3.1", ""); err != nil {
		t.Fatalf("SaveGlobalLLMConfig failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, "config.yaml"))
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if strings.Contains(string(content), "apiKeys") {
		t.Errorf("Config should not have an apiKeys block, got:\n%s", content)
	}
}

func TestSaveGlobalLLMConfig_UpdateExistingPreservesOtherSettings(t *testing.T) {
	tmpDir := overrideGlobalConfigDir(t)

	initialConfig := `# GameForge Global Configuration
version: "1"

pipeline:
  maxIterations: 5

llm:
  provider: openai
  modelName: gpt-4o-mini
  apiKeys:
    openai: sk-old-key
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(initialConfig), 0600); err != nil {
		t.Fatalf("Failed to write initial config: %v", err)
	}

	if err := SaveGlobalLLMConfig("gemini", "", "new-gemini-key"); err != nil {
		t.Fatalf("SaveGlobalLLMConfig failed: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("Failed to re-read config: %v", err)
	}

	if got := v.GetString("llm.provider"); got != "gemini" {
		t.Errorf("llm.provider = %q, want gemini", got)
	}
	if got := v.GetString("llm.modelName"); got != "gemini-2.0-flash" {
		t.Errorf("llm.modelName = %q, want the gemini default", got)
	}
	if got := v.GetString("llm.apiKeys.gemini"); got != "new-gemini-key" {
		t.Errorf("llm.apiKeys.gemini = %q, want new-gemini-key", got)
	}
	if got := v.GetString("llm.apiKeys.openai"); got != "sk-old-key" {
		t.Errorf("llm.apiKeys.openai = %q, want the old key preserved", got)
	}
	if got := v.GetInt("pipeline.maxIterations"); got != 5 {
		t.Errorf("pipeline.maxIterations = %d, want the unrelated setting preserved", got)
	}
}

func TestSaveAPIKeyForProvider_DoesNotTouchProvider(t *testing.T) {
	tmpDir := overrideGlobalConfigDir(t)

	configPath := filepath.Join(tmpDir, "config.yaml")
	initial := "llm:\n  provider: openai\n  modelName: gpt-4o-mini\n"
	if err := os.WriteFile(configPath, []byte(initial), 0600); err != nil {
		t.Fatalf("Failed to write initial config: %v", err)
	}

	if err := SaveAPIKeyForProvider("anthropic", "sk-ant-saved"); err != nil {
		t.Fatalf("SaveAPIKeyForProvider failed: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("Failed to re-read config: %v", err)
	}
	if got := v.GetString("llm.provider"); got != "openai" {
		t.Errorf("llm.provider = %q, want openai untouched", got)
	}
	if got := v.GetString("llm.apiKeys.anthropic"); got != "sk-ant-saved" {
		t.Errorf("llm.apiKeys.anthropic = %q, want sk-ant-saved", got)
	}
}
