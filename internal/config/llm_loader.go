package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/spf13/viper"
)

// LoadLLMConfig loads the global LLM configuration from Viper and Environment
// variables. It handles precedence: Explicit Viper Config > Environment
// Variables > Defaults. It does NOT handle interactive prompts (that belongs
// in the CLI layer).
func LoadLLMConfig() (llm.Config, error) {
	// 1. Provider, inferred from the model name when only that is set
	provider := viper.GetString("llm.provider")
	model := viper.GetString("llm.modelName")
	if provider == "" {
		if inferred, ok := llm.InferProviderFromModel(model); ok {
			provider = inferred
		} else {
			provider = llm.DefaultProvider
		}
	}

	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	// 2. Model
	if model == "" {
		model = llm.DefaultModelForProvider(string(llmProvider))
	}

	// 3. API Key. The explicit top-level key belongs to the active provider;
	// otherwise fall back to per-provider sources.
	// Note: We don't error on missing API key here, as interactive mode might
	// ask for it later. Or non-auth providers (Ollama) might not need it.
	apiKey := strings.TrimSpace(viper.GetString("llm.apiKey"))
	if apiKey == "" {
		apiKey = ResolveAPIKey(llmProvider)
	}

	// 4. Base URL (Ollama or custom endpoint)
	baseURL := viper.GetString("llm.baseURL")
	if baseURL == "" && llmProvider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	return llm.Config{
		Provider: llmProvider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
	}, nil
}

// LoadRoleConfig resolves the model configuration for one pipeline role by
// merging per-role overrides (llm.agents.<role>.*) over the global settings.
// A per-role provider switch re-resolves the API key and endpoint so the
// global provider's key is never sent to a different provider.
func LoadRoleConfig(role agents.Role) (agents.RoleConfig, error) {
	base, err := LoadLLMConfig()
	if err != nil {
		return agents.RoleConfig{}, err
	}

	cfg := agents.RoleConfig{
		LLM:       base,
		MaxTokens: viper.GetInt("llm.maxOutputTokens"),
	}
	if viper.IsSet("llm.temperature") {
		t := float32(viper.GetFloat64("llm.temperature"))
		cfg.Temperature = &t
	}

	prefix := "llm.agents." + string(role) + "."

	provider := viper.GetString(prefix + "provider")
	model := viper.GetString(prefix + "modelName")
	if provider == "" && model != "" {
		if inferred, ok := llm.InferProviderFromModel(model); ok {
			provider = inferred
		}
	}
	if provider != "" {
		roleProvider, err := llm.ValidateProvider(provider)
		if err != nil {
			return agents.RoleConfig{}, fmt.Errorf("agent %s: invalid provider: %w", role, err)
		}
		if roleProvider != cfg.LLM.Provider {
			cfg.LLM.Provider = roleProvider
			cfg.LLM.APIKey = ResolveAPIKey(roleProvider)
			cfg.LLM.Model = llm.DefaultModelForProvider(string(roleProvider))
			cfg.LLM.BaseURL = ""
			if roleProvider == llm.ProviderOllama {
				cfg.LLM.BaseURL = llm.DefaultOllamaURL
			}
		}
	}
	if model != "" {
		cfg.LLM.Model = model
	}
	if key := strings.TrimSpace(viper.GetString(prefix + "apiKey")); key != "" {
		cfg.LLM.APIKey = key
	}
	if url := viper.GetString(prefix + "baseURL"); url != "" {
		cfg.LLM.BaseURL = url
	}
	if viper.IsSet(prefix + "temperature") {
		t := float32(viper.GetFloat64(prefix + "temperature"))
		cfg.Temperature = &t
	}
	if n := viper.GetInt(prefix + "maxOutputTokens"); n > 0 {
		cfg.MaxTokens = n
	}

	return cfg, nil
}

// LoadCrewConfig resolves the configuration for every pipeline role.
func LoadCrewConfig() (map[agents.Role]agents.RoleConfig, error) {
	crew := make(map[agents.Role]agents.RoleConfig, len(agents.AllRoles()))
	for _, role := range agents.AllRoles() {
		cfg, err := LoadRoleConfig(role)
		if err != nil {
			return nil, err
		}
		crew[role] = cfg
	}
	return crew, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys (llm.apiKeys.<provider>) then provider-specific
// env vars. The top-level llm.apiKey is deliberately not consulted here: it
// belongs to the globally configured provider only.
func ResolveAPIKey(provider llm.Provider) string {
	perProviderPath := fmt.Sprintf("llm.apiKeys.%s", provider)
	if viper.IsSet(perProviderPath) {
		if key := strings.TrimSpace(viper.GetString(perProviderPath)); key != "" {
			return key
		}
	}
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}

// EnvVarForProvider names the environment variable checked for a provider's
// API key, for use in error messages and docs.
func EnvVarForProvider(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case llm.ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
