/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Config   string         `mapstructure:"config"`
	Project  ProjectConfig  `mapstructure:"project" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"omitempty"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir" validate:"omitempty"`
}

// PipelineConfig tunes the iterative development loop
type PipelineConfig struct {
	// DeliveryThreshold is the minimum review score for delivery.
	DeliveryThreshold int `mapstructure:"deliveryThreshold" validate:"min=0,max=100"`
	// MaxIterations caps the number of design/develop/test/review passes.
	MaxIterations int `mapstructure:"maxIterations" validate:"min=1,max=50"`
	// StageRetries is how many times a failed agent call is retried.
	StageRetries int `mapstructure:"stageRetries" validate:"min=0,max=5"`
	// CallTimeoutSeconds bounds a single agent call.
	CallTimeoutSeconds int    `mapstructure:"callTimeoutSeconds" validate:"min=5,max=600"`
	OutputDir          string `mapstructure:"outputDir" validate:"required"`
	HistoryDir         string `mapstructure:"historyDir" validate:"required"`
	HistoryFormat      string `mapstructure:"historyFormat" validate:"omitempty,oneof=json yaml toml"`
}

// LLMConfig holds configuration for LLM integration
type LLMConfig struct {
	Provider        string  `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic gemini ollama"`
	ModelName       string  `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey          string  `mapstructure:"apiKey" validate:"omitempty,min=1"`
	BaseURL         string  `mapstructure:"baseURL" validate:"omitempty,url"`
	Temperature     float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	MaxOutputTokens int     `mapstructure:"maxOutputTokens" validate:"omitempty,min=1"`
	// Agents carries per-role overrides keyed by role name
	// (designer, developer, player, reviewer).
	Agents map[string]AgentModelConfig `mapstructure:"agents" validate:"omitempty,dive"`
	// Debug enables extra request/response logging within the LLM provider (generally tied to --verbose)
	Debug bool `mapstructure:"debug"`
}

// AgentModelConfig overrides the default model settings for a single role.
// Zero values fall back to the top-level LLMConfig.
type AgentModelConfig struct {
	Provider        string   `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic gemini ollama"`
	ModelName       string   `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey          string   `mapstructure:"apiKey" validate:"omitempty,min=1"`
	BaseURL         string   `mapstructure:"baseURL" validate:"omitempty,url"`
	Temperature     *float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	MaxOutputTokens int      `mapstructure:"maxOutputTokens" validate:"omitempty,min=1"`
}
