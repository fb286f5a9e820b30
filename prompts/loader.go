package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey is a type for identifying specific prompts.
type PromptKey string

const (
	// KeyDesigner is the key for the game designer system prompt.
	KeyDesigner PromptKey = "Designer"
	// KeyDeveloper is the key for the game developer system prompt.
	KeyDeveloper PromptKey = "Developer"
	// KeyPlayer is the key for the playtester system prompt.
	KeyPlayer PromptKey = "Player"
	// KeyReviewer is the key for the reviewer system prompt.
	KeyReviewer PromptKey = "Reviewer"
)

// promptConfig defines the default content and filename for a prompt.
type promptConfig struct {
	defaultContent string
	filename       string
}

// promptRegistry maps a PromptKey to its configuration.
var promptRegistry = map[PromptKey]promptConfig{
	KeyDesigner: {
		defaultContent: DesignerSystemPrompt,
		filename:       "designer_prompt.txt",
	},
	KeyDeveloper: {
		defaultContent: DeveloperSystemPrompt,
		filename:       "developer_prompt.txt",
	},
	KeyPlayer: {
		defaultContent: PlayerSystemPrompt,
		filename:       "player_prompt.txt",
	},
	KeyReviewer: {
		defaultContent: ReviewerSystemPrompt,
		filename:       "reviewer_prompt.txt",
	},
}

// ListPromptKeys returns the known prompt keys in display order.
func ListPromptKeys() []PromptKey {
	return []PromptKey{KeyDesigner, KeyDeveloper, KeyPlayer, KeyReviewer}
}

// GetPrompt searches for a user-provided prompt file in the project's templates
// directory. If found, it returns the content of that file. Otherwise, it returns
// the hardcoded default prompt content.
func GetPrompt(key PromptKey, templatesDir string) (string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}

	// If templatesDir is not configured or is empty, always use default.
	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, nil
	}

	customPromptPath := filepath.Join(templatesDir, config.filename)

	// Check if the custom prompt file exists.
	if _, err := os.Stat(customPromptPath); err == nil {
		content, readErr := os.ReadFile(customPromptPath)
		if readErr != nil {
			return "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPromptPath, readErr)
		}
		fmt.Printf("Using custom prompt from: %s\n", customPromptPath) // Inform user
		return string(content), nil
	} else if !os.IsNotExist(err) {
		// Some other error occurred when checking for the file (e.g., permissions).
		return "", fmt.Errorf("error checking for custom prompt file at %s: %w", customPromptPath, err)
	}

	// File does not exist, so return the default content.
	return config.defaultContent, nil
}
