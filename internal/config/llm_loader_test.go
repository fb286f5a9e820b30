package config

import (
	"strings"
	"testing"

	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/spf13/viper"
)

func resetViperForTest(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	// Host env keys would leak into resolution otherwise.
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
}

func TestLoadLLMConfig_Defaults(t *testing.T) {
	resetViperForTest(t)

	cfg, err := LoadLLMConfig()
	if err != nil {
		t.Fatalf("LoadLLMConfig() error = %v", err)
	}
	if cfg.Provider != llm.ProviderOpenAI {
		t.Errorf("Provider = %q, want %q", cfg.Provider, llm.ProviderOpenAI)
	}
	if cfg.Model != llm.DefaultModelForProvider(llm.ProviderOpenAI) {
		t.Errorf("Model = %q, want provider default", cfg.Model)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty (missing key is not a load error)", cfg.APIKey)
	}
}

func TestLoadLLMConfig_InfersProviderFromModel(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.modelName", "claude-3-5-sonnet-latest")
	viper.Set("llm.apiKey", "sk-ant-test")

	cfg, err := LoadLLMConfig()
	if err != nil {
		t.Fatalf("LoadLLMConfig() error = %v", err)
	}
	if cfg.Provider != llm.ProviderAnthropic {
		t.Errorf("Provider = %q, want %q", cfg.Provider, llm.ProviderAnthropic)
	}
	if cfg.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.APIKey != "sk-ant-test" {
		t.Errorf("APIKey = %q, want top-level key", cfg.APIKey)
	}
}

func TestLoadLLMConfig_OllamaDefaultsBaseURL(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "ollama")

	cfg, err := LoadLLMConfig()
	if err != nil {
		t.Fatalf("LoadLLMConfig() error = %v", err)
	}
	if cfg.BaseURL != llm.DefaultOllamaURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, llm.DefaultOllamaURL)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty for ollama", cfg.APIKey)
	}
}

func TestLoadLLMConfig_RejectsUnknownProvider(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "bedrock")

	_, err := LoadLLMConfig()
	if err == nil {
		t.Fatal("LoadLLMConfig() error = nil, want unsupported-provider error")
	}
	if !strings.Contains(err.Error(), "invalid provider") {
		t.Errorf("error = %v, want invalid provider guidance", err)
	}
}

func TestResolveAPIKey_PerProviderConfigWinsOverEnv(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	viper.Set("llm.apiKeys.anthropic", "config-key")

	if got := ResolveAPIKey(llm.ProviderAnthropic); got != "config-key" {
		t.Errorf("ResolveAPIKey() = %q, want config-key", got)
	}
}

func TestResolveAPIKey_EnvFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
		envs     map[string]string
		want     string
	}{
		{
			name:     "openai env var",
			provider: llm.ProviderOpenAI,
			envs:     map[string]string{"OPENAI_API_KEY": "sk-openai"},
			want:     "sk-openai",
		},
		{
			name:     "anthropic env var",
			provider: llm.ProviderAnthropic,
			envs:     map[string]string{"ANTHROPIC_API_KEY": "sk-ant"},
			want:     "sk-ant",
		},
		{
			name:     "gemini prefers GEMINI_API_KEY",
			provider: llm.ProviderGemini,
			envs:     map[string]string{"GEMINI_API_KEY": "gm-1", "GOOGLE_API_KEY": "gg-2"},
			want:     "gm-1",
		},
		{
			name:     "gemini falls back to GOOGLE_API_KEY",
			provider: llm.ProviderGemini,
			envs:     map[string]string{"GOOGLE_API_KEY": "gg-2"},
			want:     "gg-2",
		},
		{
			name:     "ollama has no key source",
			provider: llm.ProviderOllama,
			envs:     map[string]string{"OPENAI_API_KEY": "sk-openai"},
			want:     "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resetViperForTest(t)
			for name, value := range tc.envs {
				t.Setenv(name, value)
			}
			if got := ResolveAPIKey(tc.provider); got != tc.want {
				t.Errorf("ResolveAPIKey(%s) = %q, want %q", tc.provider, got, tc.want)
			}
		})
	}
}

func TestLoadRoleConfig_InheritsGlobalSettings(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "openai")
	viper.Set("llm.modelName", "gpt-4o")
	viper.Set("llm.apiKey", "sk-global")
	viper.Set("llm.temperature", 0.7)
	viper.Set("llm.maxOutputTokens", 4096)

	cfg, err := LoadRoleConfig(agents.RoleDesigner)
	if err != nil {
		t.Fatalf("LoadRoleConfig() error = %v", err)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "sk-global" {
		t.Errorf("APIKey = %q, want sk-global", cfg.LLM.APIKey)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Temperature)
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.MaxTokens)
	}
}

func TestLoadRoleConfig_NoTemperatureMeansProviderDefault(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "openai")

	cfg, err := LoadRoleConfig(agents.RolePlayer)
	if err != nil {
		t.Fatalf("LoadRoleConfig() error = %v", err)
	}
	if cfg.Temperature != nil {
		t.Errorf("Temperature = %v, want nil when never configured", *cfg.Temperature)
	}
}

func TestLoadRoleConfig_ModelOverrideKeepsProviderAndKey(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "openai")
	viper.Set("llm.modelName", "gpt-4o-mini")
	viper.Set("llm.apiKey", "sk-global")
	viper.Set("llm.agents.developer.modelName", "gpt-4o")

	cfg, err := LoadRoleConfig(agents.RoleDeveloper)
	if err != nil {
		t.Fatalf("LoadRoleConfig() error = %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderOpenAI {
		t.Errorf("Provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "sk-global" {
		t.Errorf("APIKey = %q, want the inherited global key", cfg.LLM.APIKey)
	}
}

func TestLoadRoleConfig_ProviderSwitchDoesNotLeakGlobalKey(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")
	viper.Set("llm.provider", "openai")
	viper.Set("llm.apiKey", "sk-openai-global")
	viper.Set("llm.agents.reviewer.provider", "anthropic")

	cfg, err := LoadRoleConfig(agents.RoleReviewer)
	if err != nil {
		t.Fatalf("LoadRoleConfig() error = %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderAnthropic {
		t.Errorf("Provider = %q, want anthropic", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "sk-ant-env" {
		t.Errorf("APIKey = %q, want the anthropic env key, never the openai one", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != llm.DefaultModelForProvider(llm.ProviderAnthropic) {
		t.Errorf("Model = %q, want the anthropic default", cfg.LLM.Model)
	}
}

func TestLoadRoleConfig_ProviderInferredFromRoleModel(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("GEMINI_API_KEY", "gm-key")
	viper.Set("llm.provider", "openai")
	viper.Set("llm.agents.player.modelName", "gemini-2.0-flash")

	cfg, err := LoadRoleConfig(agents.RolePlayer)
	if err != nil {
		t.Fatalf("LoadRoleConfig() error = %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderGemini {
		t.Errorf("Provider = %q, want gemini inferred from the model name", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "gm-key" {
		t.Errorf("APIKey = %q, want gm-key", cfg.LLM.APIKey)
	}
}

func TestLoadRoleConfig_TemperatureOverride(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "openai")
	viper.Set("llm.temperature", 0.7)
	viper.Set("llm.agents.designer.temperature", 1.2)

	cfg, err := LoadRoleConfig(agents.RoleDesigner)
	if err != nil {
		t.Fatalf("LoadRoleConfig() error = %v", err)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 1.2 {
		t.Errorf("Temperature = %v, want the per-role 1.2", cfg.Temperature)
	}
}

func TestLoadRoleConfig_RejectsBadRoleProvider(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.agents.designer.provider", "watsonx")

	_, err := LoadRoleConfig(agents.RoleDesigner)
	if err == nil {
		t.Fatal("LoadRoleConfig() error = nil, want invalid-provider error")
	}
	if !strings.Contains(err.Error(), "agent designer") {
		t.Errorf("error = %v, want the role named", err)
	}
}

func TestLoadCrewConfig_CoversAllRoles(t *testing.T) {
	resetViperForTest(t)
	viper.Set("llm.provider", "ollama")
	viper.Set("llm.modelName", "llama3.1")

	crew, err := LoadCrewConfig()
	if err != nil {
		t.Fatalf("LoadCrewConfig() error = %v", err)
	}
	for _, role := range agents.AllRoles() {
		cfg, ok := crew[role]
		if !ok {
			t.Fatalf("LoadCrewConfig() missing role %s", role)
		}
		if cfg.LLM.Provider != llm.ProviderOllama {
			t.Errorf("%s provider = %q, want ollama", role, cfg.LLM.Provider)
		}
	}
}
