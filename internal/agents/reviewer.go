package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/models"
	"github.com/josephgoksu/gameforge/prompts"
)

// ReviewerAgent scores iterations and routes their problems.
type ReviewerAgent struct {
	BaseAgent
	templatesDir string
}

// NewReviewerAgent creates the Reviewer role agent.
func NewReviewerAgent(cfg RoleConfig, templatesDir string) *ReviewerAgent {
	return &ReviewerAgent{
		BaseAgent: NewBaseAgent(
			RoleReviewer,
			"Scores each iteration and routes problems to the designer or developer",
			cfg,
		),
		templatesDir: templatesDir,
	}
}

type reviewerView struct {
	Requirement *models.UserRequirement
	DesignJSON  string
	Artifact    *models.GameArtifact
	SessionJSON string
	Context     *models.IterationContext
}

const reviewerUserTemplate = `Original request:
{{ .Requirement.Description }}

Design document:
{{ .DesignJSON }}

Implementation:
{{- range .Artifact.Files }}

--- {{ .Filename }} ---
{{ .Content }}
{{- end }}

Playtest report:
{{ .SessionJSON }}
{{- if .Context }}
{{- if .Context.FixedIssues }}

Issues already fixed in earlier passes:
{{- range .Context.FixedIssues }}
- {{ . }}
{{- end }}
{{- end }}
{{- end }}`

// Review runs the Reviewer against a full iteration.
func (a *ReviewerAgent) Review(ctx context.Context, req ReviewRequest) (*models.GameReview, error) {
	if req.Artifact == nil || req.Session == nil {
		return nil, fmt.Errorf("review request is missing artifact or play session")
	}

	systemPrompt, err := prompts.GetPrompt(prompts.KeyReviewer, a.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("load reviewer prompt: %w", err)
	}

	designJSON, err := json.MarshalIndent(req.Design, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}
	sessionJSON, err := json.MarshalIndent(req.Session, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal play session: %w", err)
	}

	tmpl, err := template.New("reviewer").Parse(reviewerUserTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse user template: %w", err)
	}
	var userBuf bytes.Buffer
	view := reviewerView{
		Requirement: req.Requirement,
		DesignJSON:  string(designJSON),
		Artifact:    req.Artifact,
		SessionJSON: string(sessionJSON),
		Context:     req.Context,
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

	review, err := utils.ExtractAndParseJSON[models.GameReview](content)
	if err != nil {
		return nil, fmt.Errorf("parse review: %w", err)
	}

	normalizeReview(&review)
	if err := models.ValidateStruct(review); err != nil {
		return nil, fmt.Errorf("invalid review: %w", err)
	}

	return &review, nil
}

// normalizeReview maps loose issue categories onto design/code.
func normalizeReview(review *models.GameReview) {
	for i := range review.MustFix {
		review.MustFix[i].Category = models.NormalizeCategory(string(review.MustFix[i].Category))
	}
	for i := range review.ShouldFix {
		review.ShouldFix[i].Category = models.NormalizeCategory(string(review.ShouldFix[i].Category))
	}
}
