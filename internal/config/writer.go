package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/spf13/viper"
)

// quoteYAMLValue quotes a string value for safe YAML serialization.
// Handles special characters: :, #, ", ', newlines, etc.
func quoteYAMLValue(value string) string {
	needsQuoting := strings.ContainsAny(value, ":{}[]&*#?|-<>=!%@`\"'\n\r\t ")
	if !needsQuoting {
		return value
	}
	// Escape backslashes first, then double quotes
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}

// SaveGlobalLLMConfig saves the provider, model, and API key to the global
// config file (~/.gameforge/config.yaml). A fresh file gets a commented
// template; an existing file is merged through Viper so unrelated settings
// survive. The key may be empty for providers that need none (Ollama).
func SaveGlobalLLMConfig(provider, model, key string) error {
	if provider == "" {
		return fmt.Errorf("provider cannot be empty")
	}
	if _, err := llm.ValidateProvider(provider); err != nil {
		return err
	}
	if key == "" && provider != llm.ProviderOllama {
		return fmt.Errorf("API key cannot be empty for provider %s", provider)
	}
	if model == "" {
		model = llm.DefaultModelForProvider(provider)
	}

	configFile, err := globalConfigFile()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		content := fmt.Sprintf(`# GameForge Global Configuration
version: "1"

llm:
  provider: %s
  modelName: %s
`, provider, model)
		if key != "" {
			content += fmt.Sprintf("  apiKeys:\n    %s: %s\n", provider, quoteYAMLValue(key))
		}
		return os.WriteFile(configFile, []byte(content), 0600)
	}

	values := map[string]any{
		"llm.provider":  provider,
		"llm.modelName": model,
	}
	if key != "" {
		values["llm.apiKeys."+provider] = key
	}
	return mergeConfigValues(configFile, values)
}

// SaveAPIKeyForProvider saves only the API key for a specific provider
// without changing the configured provider or model. Used when the key was
// prompted for interactively and the user asked to keep it.
func SaveAPIKeyForProvider(provider, key string) error {
	if provider == "" {
		return fmt.Errorf("provider cannot be empty")
	}
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	configFile, err := globalConfigFile()
	if err != nil {
		return err
	}
	return mergeConfigValues(configFile, map[string]any{
		"llm.apiKeys." + provider: key,
	})
}

func globalConfigFile() (string, error) {
	configDir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// SaveConfigValue persists one settings key to the global config file.
// Values that parse as booleans or numbers are stored typed so the YAML
// stays clean; the CLI is responsible for vetting the key itself.
func SaveConfigValue(key, value string) error {
	configFile, err := globalConfigFile()
	if err != nil {
		return err
	}
	return mergeConfigValues(configFile, map[string]any{key: coerceValue(value)})
}

func coerceValue(value string) any {
	// Integers before booleans: ParseBool would swallow "0" and "1".
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

// mergeConfigValues rewrites the config file through a private Viper so
// settings outside the given keys survive the update.
func mergeConfigValues(path string, values map[string]any) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Read existing if any to preserve other settings
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return err
	}

	for key, value := range values {
		v.Set(key, value)
	}
	return v.WriteConfigAs(path)
}
