package llm

import "testing"

func TestDefaultModelForProvider(t *testing.T) {
	for _, provider := range SupportedProviders() {
		if DefaultModelForProvider(provider) == "" {
			t.Errorf("DefaultModelForProvider(%q) = empty", provider)
		}
	}
	if got := DefaultModelForProvider("bedrock"); got != "" {
		t.Errorf("DefaultModelForProvider(unknown) = %q, want empty", got)
	}
}

func TestInferProviderFromModel(t *testing.T) {
	tests := []struct {
		model    string
		want     string
		inferred bool
	}{
		{"gpt-4o-mini", ProviderOpenAI, true},
		{"o3-mini", ProviderOpenAI, true},
		{"claude-3-5-sonnet-latest", ProviderAnthropic, true},
		{"gemini-2.0-flash", ProviderGemini, true},
		{"llama3.1", ProviderOllama, true},
		{"qwen2.5-coder", ProviderOllama, true},
		{"totally-unknown", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := InferProviderFromModel(tt.model)
		if ok != tt.inferred || got != tt.want {
			t.Errorf("InferProviderFromModel(%q) = (%q, %v), want (%q, %v)", tt.model, got, ok, tt.want, tt.inferred)
		}
	}
}
