/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/internal/config"
	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/josephgoksu/gameforge/internal/orchestrator"
	"github.com/josephgoksu/gameforge/internal/ui"
	"github.com/josephgoksu/gameforge/store"
	"github.com/spf13/viper"
)

// ensureLLMReady makes sure the active provider is usable before a run
// starts: hosted providers need an API key, Ollama does not. A missing key
// in an interactive terminal triggers provider selection and a key prompt,
// and the answer is persisted for next time. Non-interactive sessions get
// an error that names every way to supply the key.
func ensureLLMReady() error {
	base, err := config.LoadLLMConfig()
	if err != nil {
		return err
	}
	if base.Provider == llm.ProviderOllama || base.APIKey != "" {
		return nil
	}

	if !ui.IsInteractive() {
		return fmt.Errorf("no API key for %s: pass --api-key, set llm.apiKeys.%s in the config, or export %s",
			base.Provider, base.Provider, config.EnvVarForProvider(base.Provider))
	}

	selected, err := ui.PromptProvider()
	if err != nil {
		return err
	}
	chosen, err := llm.ValidateProvider(selected)
	if err != nil {
		return err
	}

	// Route every later lookup in this process at the chosen provider.
	viper.Set("llm.provider", string(chosen))

	if chosen == llm.ProviderOllama {
		return nil
	}
	if config.ResolveAPIKey(chosen) != "" {
		return nil
	}

	key, err := ui.PromptAPIKey(providerLabel(chosen))
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("an API key is required for %s", chosen)
	}

	if err := config.SaveGlobalLLMConfig(string(chosen), "", key); err != nil {
		PrintError("Warning: failed to save configuration", err)
	} else {
		fmt.Println("✓ Configuration saved to ~/.gameforge/config.yaml")
	}
	viper.Set(fmt.Sprintf("llm.apiKeys.%s", chosen), key)
	return nil
}

// providerLabel returns the display name for a provider.
func providerLabel(p llm.Provider) string {
	switch p {
	case llm.ProviderOpenAI:
		return "OpenAI"
	case llm.ProviderAnthropic:
		return "Anthropic"
	case llm.ProviderGemini:
		return "Gemini"
	case llm.ProviderOllama:
		return "Ollama"
	default:
		return string(p)
	}
}

// buildCrew resolves the per-role model configs and assembles the crew.
func buildCrew() (*agents.Crew, error) {
	crewCfg, err := config.LoadCrewConfig()
	if err != nil {
		return nil, err
	}
	return agents.NewCrew(
		crewCfg[agents.RoleDesigner],
		crewCfg[agents.RoleDeveloper],
		crewCfg[agents.RolePlayer],
		crewCfg[agents.RoleReviewer],
		templatesPath(),
	), nil
}

// templatesPath resolves the prompt template override directory. Relative
// paths are anchored at the project root directory.
func templatesPath() string {
	cfg := GetConfig()
	dir := cfg.Project.TemplatesDir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(cfg.Project.RootDir, dir)
}

// GetHistoryStore initializes and returns the run history store.
func GetHistoryStore() (store.HistoryStore, error) {
	s := store.NewFileHistoryStore()
	cfg := GetConfig()

	err := s.Initialize(map[string]string{
		"historyDir":    cfg.Pipeline.HistoryDir,
		"historyFormat": cfg.Pipeline.HistoryFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store at %s: %w", cfg.Pipeline.HistoryDir, err)
	}
	return s, nil
}

// pipelineOptions maps the app config onto orchestrator options.
func pipelineOptions(history orchestrator.HistorySink, onProgress func(orchestrator.ProgressEvent)) orchestrator.Options {
	cfg := GetConfig().Pipeline
	return orchestrator.Options{
		DeliveryThreshold: cfg.DeliveryThreshold,
		MaxIterations:     cfg.MaxIterations,
		StageRetries:      cfg.StageRetries,
		CallTimeout:       time.Duration(cfg.CallTimeoutSeconds) * time.Second,
		History:           history,
		OnProgress:        onProgress,
	}
}
