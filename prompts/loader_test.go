package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetPrompt(t *testing.T) {
	tests := []struct {
		name      string
		promptKey PromptKey
		wantError bool
		contains  []string
	}{
		{
			name:      "designer prompt",
			promptKey: KeyDesigner,
			wantError: false,
			contains:  []string{"design document", "mechanics", "json"},
		},
		{
			name:      "developer prompt",
			promptKey: KeyDeveloper,
			wantError: false,
			contains:  []string{"mainFile", "self-contained", "json"},
		},
		{
			name:      "player prompt",
			promptKey: KeyPlayer,
			wantError: false,
			contains:  []string{"bugsFound", "funScore"},
		},
		{
			name:      "reviewer prompt",
			promptKey: KeyReviewer,
			wantError: false,
			contains:  []string{"overallScore", "mustFix", "category"},
		},
		{
			name:      "unknown key",
			promptKey: PromptKey("Publisher"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := GetPrompt(tt.promptKey, "")
			if (err != nil) != tt.wantError {
				t.Errorf("GetPrompt() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if !tt.wantError {
				promptLower := strings.ToLower(prompt)
				for _, expected := range tt.contains {
					if !strings.Contains(promptLower, strings.ToLower(expected)) {
						t.Errorf("GetPrompt(%v) missing expected content %q in prompt", tt.promptKey, expected)
					}
				}
			}
		})
	}
}

func TestGetPrompt_FileOverride(t *testing.T) {
	templatesDir := t.TempDir()
	custom := "You are a minimalist designer. Output JSON."
	if err := os.WriteFile(filepath.Join(templatesDir, "designer_prompt.txt"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	prompt, err := GetPrompt(KeyDesigner, templatesDir)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if prompt != custom {
		t.Errorf("GetPrompt() = %q, want override content", prompt)
	}

	// Other keys still fall back to defaults.
	prompt, err = GetPrompt(KeyReviewer, templatesDir)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if prompt != ReviewerSystemPrompt {
		t.Error("GetPrompt() should return the default when no override file exists")
	}
}
