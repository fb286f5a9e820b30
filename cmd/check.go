/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/internal/config"
	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/josephgoksu/gameforge/prompts"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check GameForge setup and diagnose issues",
	Long: `Validate your GameForge configuration before burning tokens on a run.

Checks:
  • Config file and pipeline settings
  • LLM provider, model, and API key resolution
  • Per-role model overrides
  • Output and history directories
  • Prompt template overrides

With --live, it also sends one tiny generation request to the configured
provider to prove the credentials actually work.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context())
	},
}

var checkLive bool

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkLive, "live", false, "Send a one-token test generation to the provider")
}

// setupCheck represents a single diagnostic check
type setupCheck struct {
	Name    string
	Status  string // "ok", "warn", "fail"
	Message string
	Hint    string
}

func runCheck(ctx context.Context) error {
	fmt.Println("🩺 GameForge Check")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	checks := []setupCheck{checkConfigFile(), checkPipelineSettings()}

	providerCheck, llmCfg := checkProviderConfig()
	checks = append(checks, providerCheck)
	if llmCfg != nil {
		checks = append(checks, checkAPIKey(*llmCfg))
		checks = append(checks, checkRoleOverrides()...)
	}
	checks = append(checks, checkDirectory("Output directory", GetConfig().Pipeline.OutputDir))
	checks = append(checks, checkDirectory("History directory", GetConfig().Pipeline.HistoryDir))
	checks = append(checks, checkTemplates())

	hasErrors := false
	for _, c := range checks {
		printSetupCheck(c)
		if c.Status == "fail" {
			hasErrors = true
		}
	}

	if checkLive && !hasErrors && llmCfg != nil {
		live := checkLiveGeneration(ctx, *llmCfg)
		printSetupCheck(live)
		if live.Status == "fail" {
			hasErrors = true
		}
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if hasErrors {
		fmt.Println("❌ Issues found. Fix the errors above before running the pipeline.")
		return fmt.Errorf("setup check failed")
	}
	fmt.Println("✅ Everything looks good!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  • Try it out:        gameforge demo")
	fmt.Println("  • Build your game:   gameforge create \"your game idea\"")
	return nil
}

func printSetupCheck(c setupCheck) {
	var icon string
	switch c.Status {
	case "ok":
		icon = "✅"
	case "warn":
		icon = "⚠️ "
	case "fail":
		icon = "❌"
	}

	fmt.Printf("%s %s: %s\n", icon, c.Name, c.Message)
	if c.Hint != "" && c.Status != "ok" {
		fmt.Printf("   └─ %s\n", c.Hint)
	}
}

func checkConfigFile() setupCheck {
	if used := viper.ConfigFileUsed(); used != "" {
		return setupCheck{Name: "Config file", Status: "ok", Message: used}
	}
	return setupCheck{
		Name:    "Config file",
		Status:  "warn",
		Message: "none found, using defaults and environment",
		Hint:    "Optional: create .gameforge/config.yaml or ~/.gameforge/config.yaml",
	}
}

func checkPipelineSettings() setupCheck {
	cfg := GetConfig().Pipeline
	return setupCheck{
		Name:   "Pipeline",
		Status: "ok",
		Message: fmt.Sprintf("threshold %d, max %d passes, %d retries, %ds per call",
			cfg.DeliveryThreshold, cfg.MaxIterations, cfg.StageRetries, cfg.CallTimeoutSeconds),
	}
}

func checkProviderConfig() (setupCheck, *llm.Config) {
	cfg, err := config.LoadLLMConfig()
	if err != nil {
		return setupCheck{
			Name:    "Provider",
			Status:  "fail",
			Message: err.Error(),
			Hint:    "Set llm.provider to one of: openai, anthropic, gemini, ollama",
		}, nil
	}
	msg := fmt.Sprintf("%s / %s", cfg.Provider, cfg.Model)
	if cfg.BaseURL != "" {
		msg += " via " + cfg.BaseURL
	}
	return setupCheck{Name: "Provider", Status: "ok", Message: msg}, &cfg
}

func checkAPIKey(cfg llm.Config) setupCheck {
	if cfg.Provider == llm.ProviderOllama {
		return setupCheck{Name: "API key", Status: "ok", Message: "not required for Ollama"}
	}
	if cfg.APIKey != "" {
		return setupCheck{Name: "API key", Status: "ok", Message: fmt.Sprintf("set for %s (%d chars)", cfg.Provider, len(cfg.APIKey))}
	}
	return setupCheck{
		Name:    "API key",
		Status:  "fail",
		Message: fmt.Sprintf("no key found for %s", cfg.Provider),
		Hint:    fmt.Sprintf("Pass --api-key, set llm.apiKeys.%s, or export %s", cfg.Provider, config.EnvVarForProvider(cfg.Provider)),
	}
}

// checkRoleOverrides reports roles whose model differs from the global one.
func checkRoleOverrides() []setupCheck {
	base, err := config.LoadLLMConfig()
	if err != nil {
		return nil
	}

	var checks []setupCheck
	for _, role := range agents.AllRoles() {
		cfg, err := config.LoadRoleConfig(role)
		if err != nil {
			checks = append(checks, setupCheck{
				Name:    fmt.Sprintf("Role (%s)", role.Label()),
				Status:  "fail",
				Message: err.Error(),
			})
			continue
		}
		if cfg.LLM.Provider == base.Provider && cfg.LLM.Model == base.Model {
			continue // no override, nothing to report
		}
		status := "ok"
		hint := ""
		if cfg.LLM.Provider != llm.ProviderOllama && cfg.LLM.APIKey == "" {
			status = "fail"
			hint = fmt.Sprintf("Export %s or set llm.apiKeys.%s", config.EnvVarForProvider(cfg.LLM.Provider), cfg.LLM.Provider)
		}
		checks = append(checks, setupCheck{
			Name:    fmt.Sprintf("Role (%s)", role.Label()),
			Status:  status,
			Message: fmt.Sprintf("%s / %s", cfg.LLM.Provider, cfg.LLM.Model),
			Hint:    hint,
		})
	}
	return checks
}

func checkDirectory(name, dir string) setupCheck {
	if dir == "" {
		return setupCheck{Name: name, Status: "fail", Message: "not configured"}
	}
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return setupCheck{Name: name, Status: "ok", Message: dir + " (will be created)"}
	case err != nil:
		return setupCheck{Name: name, Status: "fail", Message: err.Error()}
	case !info.IsDir():
		return setupCheck{
			Name:    name,
			Status:  "fail",
			Message: dir + " exists but is not a directory",
			Hint:    "Move the file out of the way or point the config elsewhere",
		}
	default:
		return setupCheck{Name: name, Status: "ok", Message: dir}
	}
}

func checkTemplates() setupCheck {
	dir := templatesPath()
	if dir == "" {
		return setupCheck{Name: "Prompt templates", Status: "ok", Message: "using built-in prompts"}
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return setupCheck{
			Name:    "Prompt templates",
			Status:  "warn",
			Message: fmt.Sprintf("%s configured but missing", dir),
			Hint:    "Create the directory or unset project.templatesDir",
		}
	}

	overridden := 0
	for _, key := range prompts.ListPromptKeys() {
		name := strings.ToLower(string(key)) + "_prompt.txt"
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			overridden++
		}
	}
	return setupCheck{
		Name:    "Prompt templates",
		Status:  "ok",
		Message: fmt.Sprintf("%s (%d override(s) found)", dir, overridden),
	}
}

// checkLiveGeneration proves the configured provider accepts our credentials
// by requesting a single token.
func checkLiveGeneration(ctx context.Context, cfg llm.Config) setupCheck {
	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chatModel, err := llm.NewChatModel(callCtx, cfg)
	if err != nil {
		return setupCheck{Name: "Live ping", Status: "fail", Message: err.Error()}
	}

	start := time.Now()
	_, err = chatModel.Generate(callCtx, []*schema.Message{
		{Role: schema.User, Content: "Reply with the single word: pong"},
	}, model.WithMaxTokens(4))
	if err != nil {
		return setupCheck{
			Name:    "Live ping",
			Status:  "fail",
			Message: err.Error(),
			Hint:    "The provider rejected the request; check the API key and model name",
		}
	}
	return setupCheck{
		Name:    "Live ping",
		Status:  "ok",
		Message: fmt.Sprintf("%s answered in %s", cfg.Provider, time.Since(start).Round(time.Millisecond)),
	}
}
