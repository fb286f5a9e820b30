package types

import (
	"testing"
)

func TestAppConfig_Structure(t *testing.T) {
	config := AppConfig{
		Project: ProjectConfig{
			RootDir:      "/home/user/.gameforge",
			TemplatesDir: "templates",
		},
		LLM: LLMConfig{
			Provider:    "openai",
			ModelName:   "gpt-4o-mini",
			Temperature: 0.7,
			Agents: map[string]AgentModelConfig{
				"reviewer": {ModelName: "gpt-4o"},
			},
		},
		Pipeline: PipelineConfig{
			DeliveryThreshold:  75,
			MaxIterations:      10,
			StageRetries:       2,
			CallTimeoutSeconds: 120,
			OutputDir:          "./games",
			HistoryDir:         ".gameforge/runs",
		},
	}

	if config.Project.RootDir != "/home/user/.gameforge" {
		t.Errorf("Project.RootDir mismatch: got %q, want %q", config.Project.RootDir, "/home/user/.gameforge")
	}
	if config.Pipeline.DeliveryThreshold != 75 {
		t.Errorf("Pipeline.DeliveryThreshold mismatch: got %d, want %d", config.Pipeline.DeliveryThreshold, 75)
	}
	if config.LLM.Agents["reviewer"].ModelName != "gpt-4o" {
		t.Errorf("LLM.Agents[reviewer].ModelName mismatch: got %q, want %q", config.LLM.Agents["reviewer"].ModelName, "gpt-4o")
	}
}

func TestConfigurationError_Message(t *testing.T) {
	err := NewConfigurationError("pipeline.maxIterations", "must be at least 1")

	want := "invalid configuration: pipeline.maxIterations: must be at least 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
