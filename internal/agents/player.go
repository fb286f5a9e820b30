package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/models"
	"github.com/josephgoksu/gameforge/prompts"
)

// PlayerAgent playtests games by tracing their code.
type PlayerAgent struct {
	BaseAgent
	templatesDir string
}

// NewPlayerAgent creates the Player role agent.
func NewPlayerAgent(cfg RoleConfig, templatesDir string) *PlayerAgent {
	return &PlayerAgent{
		BaseAgent: NewBaseAgent(
			RolePlayer,
			"Simulates play sessions and reports bugs, suggestions, and a fun score",
			cfg,
		),
		templatesDir: templatesDir,
	}
}

type playerView struct {
	DesignJSON string
	Artifact   *models.GameArtifact
}

const playerUserTemplate = `Design document the game should implement:
{{ .DesignJSON }}

Game code to playtest:
{{- range .Artifact.Files }}

--- {{ .Filename }} ---
{{ .Content }}
{{- end }}

Entry file: {{ .Artifact.MainFile }}`

// Playtest runs the Player against an artifact.
func (a *PlayerAgent) Playtest(ctx context.Context, req PlayRequest) (*models.PlaySession, error) {
	if req.Artifact == nil {
		return nil, fmt.Errorf("play request has no artifact")
	}

	systemPrompt, err := prompts.GetPrompt(prompts.KeyPlayer, a.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("load player prompt: %w", err)
	}

	designJSON, err := json.MarshalIndent(req.Design, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}

	tmpl, err := template.New("player").Parse(playerUserTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse user template: %w", err)
	}
	var userBuf bytes.Buffer
	if err := tmpl.Execute(&userBuf, playerView{DesignJSON: string(designJSON), Artifact: req.Artifact}); err != nil {
		return nil, fmt.Errorf("execute user template: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userBuf.String()},
	}

	content, _, err := a.GenerateWithTiming(ctx, messages)
	if err != nil {
		return nil, err
	}

	session, err := utils.ExtractAndParseJSON[models.PlaySession](content)
	if err != nil {
		return nil, fmt.Errorf("parse play session: %w", err)
	}

	// The session identity is ours to assign, not the model's.
	session.SessionID = uuid.NewString()
	if err := models.ValidateStruct(session); err != nil {
		return nil, fmt.Errorf("invalid play session: %w", err)
	}

	return &session, nil
}
