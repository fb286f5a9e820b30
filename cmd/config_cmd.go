/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/internal/config"
	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/josephgoksu/gameforge/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage GameForge configuration",
	Long: `View and manage GameForge configuration settings.

Settings live in ~/.gameforge/config.yaml (global) and ./.gameforge/config.yaml
(project, merged on top). 'config set' always writes to the global file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the global config file.

Examples:
  gameforge config set llm.provider anthropic
  gameforge config set llm.agents.developer.modelName claude-3-5-sonnet-latest
  gameforge config set pipeline.deliveryThreshold 80`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(args[0])
	},
}

// Telemetry subcommands
var configTelemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage anonymous usage telemetry settings.

GameForge collects anonymous usage data to improve the product:
  - Run outcomes, iteration counts, and score buckets
  - Provider and model names
  - OS and architecture
  - CLI version

Game descriptions, designs, and generated code are never collected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelemetryStatus()
	},
}

var configTelemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelemetryStatus()
	},
}

var configTelemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelemetryEnable()
	},
}

var configTelemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelemetryDisable()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)

	configCmd.AddCommand(configTelemetryCmd)
	configTelemetryCmd.AddCommand(configTelemetryStatusCmd)
	configTelemetryCmd.AddCommand(configTelemetryEnableCmd)
	configTelemetryCmd.AddCommand(configTelemetryDisableCmd)
}

// settableKeys names the config keys 'config set' accepts. Per-role model
// overrides (llm.agents.<role>.*) are validated separately.
var settableKeys = map[string]bool{
	"llm.provider":                true,
	"llm.modelName":               true,
	"llm.baseURL":                 true,
	"llm.temperature":             true,
	"llm.maxOutputTokens":         true,
	"project.templatesDir":        true,
	"pipeline.deliveryThreshold":  true,
	"pipeline.maxIterations":      true,
	"pipeline.stageRetries":       true,
	"pipeline.callTimeoutSeconds": true,
	"pipeline.outputDir":          true,
	"pipeline.historyDir":         true,
	"pipeline.historyFormat":      true,
}

func runConfigShow() error {
	pipeline := GetConfig().Pipeline

	crew, err := config.LoadCrewConfig()
	if err != nil {
		return fmt.Errorf("resolve crew config: %w", err)
	}

	if isJSON() {
		type roleModel struct {
			Provider string `json:"provider"`
			Model    string `json:"model"`
		}
		roles := make(map[string]roleModel, len(crew))
		for role, cfg := range crew {
			roles[string(role)] = roleModel{Provider: string(cfg.LLM.Provider), Model: cfg.LLM.Model}
		}
		return printJSON(map[string]any{
			"config_file": viper.ConfigFileUsed(),
			"roles":       roles,
			"pipeline":    pipeline,
		})
	}

	fmt.Println("GameForge Configuration")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("  Config file: %s\n", used)
	} else {
		fmt.Println("  Config file: (none, defaults + environment)")
	}
	fmt.Println()

	fmt.Println("## Models")
	for _, role := range agents.AllRoles() {
		cfg := crew[role]
		fmt.Printf("  %-10s %s / %s\n", role.Label()+":", cfg.LLM.Provider, cfg.LLM.Model)
	}

	fmt.Println()
	fmt.Println("## Pipeline")
	fmt.Printf("  deliveryThreshold:  %d\n", pipeline.DeliveryThreshold)
	fmt.Printf("  maxIterations:      %d\n", pipeline.MaxIterations)
	fmt.Printf("  stageRetries:       %d\n", pipeline.StageRetries)
	fmt.Printf("  callTimeoutSeconds: %d\n", pipeline.CallTimeoutSeconds)
	fmt.Printf("  outputDir:          %s\n", pipeline.OutputDir)
	fmt.Printf("  historyDir:         %s\n", pipeline.HistoryDir)
	fmt.Printf("  historyFormat:      %s\n", pipeline.HistoryFormat)

	return nil
}

func runConfigSet(key, value string) error {
	// API keys go through the dedicated writer so they land under
	// llm.apiKeys.<provider> with proper quoting, never in plain set.
	if strings.HasPrefix(key, "llm.apiKey") {
		return fmt.Errorf("set API keys with environment variables or 'gameforge create --api-key' instead")
	}

	if !settableKey(key) {
		keys := make([]string, 0, len(settableKeys))
		for k := range settableKeys {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config key: %s\n\nAvailable keys:\n  %s\n  llm.agents.<role>.{provider,modelName,baseURL,temperature,maxOutputTokens}",
			key, strings.Join(keys, "\n  "))
	}

	if strings.HasSuffix(key, "provider") {
		if _, err := llm.ValidateProvider(value); err != nil {
			return err
		}
	}

	if err := config.SaveConfigValue(key, value); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("✅ %s = %s\n", key, value)
	return nil
}

func settableKey(key string) bool {
	if settableKeys[key] {
		return true
	}
	// llm.agents.<role>.<field>
	parts := strings.Split(key, ".")
	if len(parts) != 4 || parts[0] != "llm" || parts[1] != "agents" {
		return false
	}
	validRole := false
	for _, role := range agents.AllRoles() {
		if parts[2] == string(role) {
			validRole = true
			break
		}
	}
	if !validRole {
		return false
	}
	switch parts[3] {
	case "provider", "modelName", "baseURL", "temperature", "maxOutputTokens":
		return true
	}
	return false
}

func runConfigGet(key string) error {
	if !viper.IsSet(key) {
		return fmt.Errorf("config key not set: %s", key)
	}
	value := viper.Get(key)
	if isJSON() {
		return printJSON(map[string]any{"key": key, "value": value})
	}
	fmt.Println(value)
	return nil
}

// runTelemetryStatus displays the current telemetry configuration.
func runTelemetryStatus() error {
	cfg, err := telemetry.Load()
	if err != nil {
		return fmt.Errorf("load telemetry config: %w", err)
	}

	configPath, _ := telemetry.GetConfigPath()

	if isJSON() {
		return printJSON(map[string]any{
			"enabled":       cfg.IsEnabled(),
			"consent_asked": !cfg.NeedsConsent(),
			"anonymous_id":  cfg.AnonymousID,
			"config_path":   configPath,
		})
	}

	fmt.Println("Telemetry Configuration")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	status := "Disabled"
	statusIcon := "❌"
	if cfg.IsEnabled() {
		status = "Enabled"
		statusIcon = "✅"
	}

	fmt.Printf("  Status:       %s %s\n", statusIcon, status)
	fmt.Printf("  Anonymous ID: %s\n", cfg.AnonymousID)
	fmt.Printf("  Config file:  %s\n", configPath)
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  gameforge config telemetry enable   Enable telemetry")
	fmt.Println("  gameforge config telemetry disable  Disable telemetry")
	fmt.Println()

	return nil
}

// runTelemetryEnable enables telemetry and saves the config.
func runTelemetryEnable() error {
	cfg, err := telemetry.Load()
	if err != nil {
		return fmt.Errorf("load telemetry config: %w", err)
	}

	cfg.Enable()

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save telemetry config: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]any{
			"enabled": true,
			"message": "Telemetry enabled",
		})
	}

	fmt.Println("✅ Telemetry enabled")
	fmt.Println()
	fmt.Println("Thank you for helping improve GameForge!")
	fmt.Println("We collect: run outcomes, iteration counts, provider/model, OS, CLI version")
	fmt.Println("We never collect: game descriptions, designs, or generated code")
	return nil
}

// runTelemetryDisable disables telemetry and saves the config.
func runTelemetryDisable() error {
	cfg, err := telemetry.Load()
	if err != nil {
		return fmt.Errorf("load telemetry config: %w", err)
	}

	cfg.Disable()

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save telemetry config: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]any{
			"enabled": false,
			"message": "Telemetry disabled",
		})
	}

	fmt.Println("✅ Telemetry disabled")
	fmt.Println()
	fmt.Println("You can re-enable anytime with: gameforge config telemetry enable")
	return nil
}
