package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/models"
	"github.com/josephgoksu/gameforge/prompts"
)

// DeveloperAgent implements games from design documents.
type DeveloperAgent struct {
	BaseAgent
	templatesDir string
}

// NewDeveloperAgent creates the Developer role agent.
func NewDeveloperAgent(cfg RoleConfig, templatesDir string) *DeveloperAgent {
	return &DeveloperAgent{
		BaseAgent: NewBaseAgent(
			RoleDeveloper,
			"Writes complete, self-contained browser game code from a design document",
			cfg,
		),
		templatesDir: templatesDir,
	}
}

// developerView is the prepared data the user template renders.
type developerView struct {
	DesignJSON string
	Previous   *models.GameArtifact
	Context    *models.IterationContext
}

const developerUserTemplate = `Design document:
{{ .DesignJSON }}
{{- if .Previous }}

Current implementation. Revise it; return ALL files, complete:
{{- range .Previous.Files }}

--- {{ .Filename }} ---
{{ .Content }}
{{- end }}
{{- end }}
{{- if .Context }}
{{- if .Context.PendingBugs }}

Bugs that MUST be fixed in this pass:
{{- range .Context.PendingBugs }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Context.PendingImprovements }}

Required improvements:
{{- range .Context.PendingImprovements }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Context.FixedIssues }}

Already fixed (do not regress):
{{- range .Context.FixedIssues }}
- {{ . }}
{{- end }}
{{- end }}
{{- end }}`

// Develop runs the Developer against a build request.
func (a *DeveloperAgent) Develop(ctx context.Context, req BuildRequest) (*models.GameArtifact, error) {
	if req.Design == nil {
		return nil, fmt.Errorf("build request has no design document")
	}

	systemPrompt, err := prompts.GetPrompt(prompts.KeyDeveloper, a.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("load developer prompt: %w", err)
	}

	designJSON, err := json.MarshalIndent(req.Design, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}

	tmpl, err := template.New("developer").Parse(developerUserTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse user template: %w", err)
	}
	var userBuf bytes.Buffer
	view := developerView{
		DesignJSON: string(designJSON),
		Previous:   req.Previous,
		Context:    req.Context,
	}
	if err := tmpl.Execute(&userBuf, view); err != nil {
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

	artifact, err := utils.ExtractAndParseJSON[models.GameArtifact](content)
	if err != nil {
		return nil, fmt.Errorf("parse game artifact: %w", err)
	}

	normalizeArtifact(&artifact)
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game artifact: %w", err)
	}

	return &artifact, nil
}

// normalizeArtifact fills in a missing MainFile when the choice is obvious.
func normalizeArtifact(artifact *models.GameArtifact) {
	if artifact.MainFile != "" || len(artifact.Files) == 0 {
		return
	}
	if len(artifact.Files) == 1 {
		artifact.MainFile = artifact.Files[0].Filename
		return
	}
	for _, f := range artifact.Files {
		if strings.EqualFold(f.Filename, "index.html") {
			artifact.MainFile = f.Filename
			return
		}
	}
}
