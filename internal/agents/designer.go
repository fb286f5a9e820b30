package agents

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/models"
	"github.com/josephgoksu/gameforge/prompts"
)

// DesignerAgent produces game design documents.
type DesignerAgent struct {
	BaseAgent
	templatesDir string
}

// NewDesignerAgent creates the Designer role agent.
func NewDesignerAgent(cfg RoleConfig, templatesDir string) *DesignerAgent {
	return &DesignerAgent{
		BaseAgent: NewBaseAgent(
			RoleDesigner,
			"Transforms game requests into complete, buildable design documents",
			cfg,
		),
		templatesDir: templatesDir,
	}
}

const designerUserTemplate = `Game request:
{{ .Requirement.Description }}
{{- if .Requirement.Genre }}

Preferred genre: {{ .Requirement.Genre }}
{{- end }}
{{- if .Requirement.TargetAudience }}
Target audience: {{ .Requirement.TargetAudience }}
{{- end }}
{{- if .Requirement.Constraints }}

Hard constraints:
{{- range .Requirement.Constraints }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Context }}

This is revision pass {{ .Context.Iteration }}. Keep the title and core concept from the baseline design{{ if .Context.BaselineDesign }} ("{{ .Context.BaselineDesign.Title }}"){{ end }} and rework only what the feedback below demands.
{{- if .Context.PendingImprovements }}

Open design and gameplay problems:
{{- range .Context.PendingImprovements }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Context.PendingBugs }}

Bugs observed in playtesting:
{{- range .Context.PendingBugs }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Context.Suggestions }}

Player suggestions worth considering:
{{- range .Context.Suggestions }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Context.FixedIssues }}

Already fixed in earlier passes (do not revert):
{{- range .Context.FixedIssues }}
- {{ . }}
{{- end }}
{{- end }}
{{- end }}`

// Design runs the Designer against a request.
func (a *DesignerAgent) Design(ctx context.Context, req DesignRequest) (*models.GameDesignDocument, error) {
	if req.Requirement == nil {
		return nil, fmt.Errorf("design request has no requirement")
	}

	systemPrompt, err := prompts.GetPrompt(prompts.KeyDesigner, a.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("load designer prompt: %w", err)
	}

	tmpl, err := template.New("designer").Parse(designerUserTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse user template: %w", err)
	}
	var userBuf bytes.Buffer
	if err := tmpl.Execute(&userBuf, req); err != nil {
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

	doc, err := utils.ExtractAndParseJSON[models.GameDesignDocument](content)
	if err != nil {
		return nil, fmt.Errorf("parse design document: %w", err)
	}

	normalizeDesign(&doc, req.Requirement)
	if err := models.ValidateStruct(doc); err != nil {
		return nil, fmt.Errorf("invalid design document: %w", err)
	}

	return &doc, nil
}

// normalizeDesign smooths over loose model output before validation.
func normalizeDesign(doc *models.GameDesignDocument, req *models.UserRequirement) {
	doc.Difficulty = models.NormalizeDifficulty(string(doc.Difficulty))
	if doc.Genre == "" && req.Genre != "" {
		doc.Genre = req.Genre
	}
}
