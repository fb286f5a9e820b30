/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com

Package agents provides the four LLM-powered roles of the game development
pipeline: Designer, Developer, Player, and Reviewer.
*/
package agents

import (
	"context"

	"github.com/josephgoksu/gameforge/internal/llm"
	"github.com/josephgoksu/gameforge/models"
)

// Role identifies one of the pipeline roles.
type Role string

const (
	RoleDesigner  Role = "designer"
	RoleDeveloper Role = "developer"
	RolePlayer    Role = "player"
	RoleReviewer  Role = "reviewer"
)

// AllRoles returns the roles in pipeline order.
func AllRoles() []Role {
	return []Role{RoleDesigner, RoleDeveloper, RolePlayer, RoleReviewer}
}

// Label returns the display name for a role.
func (r Role) Label() string {
	switch r {
	case RoleDesigner:
		return "Designer"
	case RoleDeveloper:
		return "Developer"
	case RolePlayer:
		return "Player"
	case RoleReviewer:
		return "Reviewer"
	default:
		return string(r)
	}
}

// DesignRequest carries what the Designer needs: the user's requirement and,
// on revision passes, the accumulated feedback.
type DesignRequest struct {
	Requirement *models.UserRequirement
	Context     *models.IterationContext // nil on the first pass
}

// BuildRequest carries what the Developer needs. Previous is the artifact to
// revise, nil on the first build of a design.
type BuildRequest struct {
	Design   *models.GameDesignDocument
	Previous *models.GameArtifact
	Context  *models.IterationContext
}

// PlayRequest carries the artifact to playtest against its design.
type PlayRequest struct {
	Design   *models.GameDesignDocument
	Artifact *models.GameArtifact
}

// ReviewRequest carries everything the Reviewer weighs.
type ReviewRequest struct {
	Requirement *models.UserRequirement
	Design      *models.GameDesignDocument
	Artifact    *models.GameArtifact
	Session     *models.PlaySession
	Context     *models.IterationContext
}

// Designer turns a requirement into a design document.
type Designer interface {
	Design(ctx context.Context, req DesignRequest) (*models.GameDesignDocument, error)
}

// Developer turns a design into a playable artifact.
type Developer interface {
	Develop(ctx context.Context, req BuildRequest) (*models.GameArtifact, error)
}

// Player simulates a playtest and reports bugs and suggestions.
type Player interface {
	Playtest(ctx context.Context, req PlayRequest) (*models.PlaySession, error)
}

// Reviewer scores an iteration and routes its problems.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (*models.GameReview, error)
}

// Crew bundles one agent per role.
type Crew struct {
	Designer  Designer
	Developer Developer
	Player    Player
	Reviewer  Reviewer
}

// RoleConfig is the per-role model configuration resolved from app config.
type RoleConfig struct {
	LLM         llm.Config
	Temperature *float32 // nil leaves the provider default
	MaxTokens   int      // 0 leaves the provider default
}

// NewCrew builds the LLM-backed crew. TemplatesDir may be empty; when set,
// per-role prompt overrides are loaded from it.
func NewCrew(designer, developer, player, reviewer RoleConfig, templatesDir string) *Crew {
	return &Crew{
		Designer:  NewDesignerAgent(designer, templatesDir),
		Developer: NewDeveloperAgent(developer, templatesDir),
		Player:    NewPlayerAgent(player, templatesDir),
		Reviewer:  NewReviewerAgent(reviewer, templatesDir),
	}
}
