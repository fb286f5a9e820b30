/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com

BaseAgent carries the shared LLM plumbing for all pipeline agents.
*/
package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/josephgoksu/gameforge/internal/logger"
)

// BaseAgent provides shared functionality for all LLM-powered agents.
// Embed this struct in an agent to get model creation and generation for free.
type BaseAgent struct {
	role        Role
	description string
	llmConfig   llm.Config
	temperature *float32
	maxTokens   int
}

// NewBaseAgent creates a new BaseAgent for a role.
func NewBaseAgent(role Role, description string, cfg RoleConfig) BaseAgent {
	return BaseAgent{
		role:        role,
		description: description,
		llmConfig:   cfg.LLM,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Role returns the agent's pipeline role.
func (b *BaseAgent) Role() Role { return b.role }

// Description returns the agent description.
func (b *BaseAgent) Description() string { return b.description }

// LLMConfig returns the LLM configuration for this agent.
func (b *BaseAgent) LLMConfig() llm.Config { return b.llmConfig }

// CreateChatModel creates an LLM chat model using the agent's config.
func (b *BaseAgent) CreateChatModel(ctx context.Context) (model.BaseChatModel, error) {
	chatModel, err := llm.NewChatModel(ctx, b.llmConfig)
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}
	return chatModel, nil
}

// Generate sends messages to the LLM and returns the response content,
// applying the agent's per-role generation settings.
func (b *BaseAgent) Generate(ctx context.Context, messages []*schema.Message) (string, error) {
	chatModel, err := b.CreateChatModel(ctx)
	if err != nil {
		return "", err
	}

	var opts []model.Option
	if b.temperature != nil {
		opts = append(opts, model.WithTemperature(*b.temperature))
	}
	if b.maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(b.maxTokens))
	}

	// Crash context: if the call below panics deep in a provider SDK,
	// the crash log shows which prompt was in flight.
	if n := len(messages); n > 0 {
		logger.SetLastPrompt(messages[n-1].Content)
	}

	resp, err := chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}

	return resp.Content, nil
}

// GenerateWithTiming sends messages and returns content with duration.
func (b *BaseAgent) GenerateWithTiming(ctx context.Context, messages []*schema.Message) (string, time.Duration, error) {
	start := time.Now()
	content, err := b.Generate(ctx, messages)
	return content, time.Since(start), err
}
