package llm

import "strings"

// Provider constants
const (
	// DefaultProvider is the default LLM provider
	DefaultProvider = ProviderOpenAI

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI = "openai"

	// ProviderOllama represents the Ollama provider
	ProviderOllama = "ollama"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini = "gemini"
)

// DefaultOllamaURL is the default URL for a local Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultAnthropicMaxTokens caps Anthropic responses. The API requires an
// explicit max_tokens, and game code generation needs a generous one.
const DefaultAnthropicMaxTokens = 8192

// defaultModels maps each provider to the model used when config names none.
var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-sonnet-latest",
	ProviderGemini:    "gemini-2.0-flash",
	ProviderOllama:    "llama3.1",
}

// DefaultModelForProvider returns the default model ID for a given provider.
func DefaultModelForProvider(provider string) string {
	return defaultModels[provider]
}

// SupportedProviders returns the providers in display order.
func SupportedProviders() []string {
	return []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama}
}

// InferProviderFromModel attempts to determine the provider from a model
// name by prefix. Returns the provider ID and true on success.
func InferProviderFromModel(model string) (string, bool) {
	switch {
	case strings.HasPrefix(model, "gpt-"), strings.HasPrefix(model, "o1-"), strings.HasPrefix(model, "o3-"):
		return ProviderOpenAI, true
	case strings.HasPrefix(model, "claude-"):
		return ProviderAnthropic, true
	case strings.HasPrefix(model, "gemini-"):
		return ProviderGemini, true
	case strings.HasPrefix(model, "llama"), strings.HasPrefix(model, "mistral"), strings.HasPrefix(model, "codellama"), strings.HasPrefix(model, "phi"), strings.HasPrefix(model, "qwen"):
		return ProviderOllama, true
	}
	return "", false
}
