package models

import (
	"time"

	"github.com/google/uuid"
)

// IterationSnapshot records everything one pass through the pipeline
// produced. Stage-failure passes may leave later fields nil.
type IterationSnapshot struct {
	Iteration  int                 `json:"iteration" validate:"gte=1"`
	Design     *GameDesignDocument `json:"design,omitempty"`
	Artifact   *GameArtifact       `json:"artifact,omitempty"`
	Session    *PlaySession        `json:"session,omitempty"`
	Review     *GameReview         `json:"review,omitempty"`
	Route      string              `json:"route,omitempty"` // stage the loop re-entered after this review, if any
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
}

// Score returns the review score for ranking snapshots, or -1 when the pass
// never reached review.
func (s *IterationSnapshot) Score() int {
	if s.Review == nil {
		return -1
	}
	return s.Review.OverallScore
}

// IterationHistory is the memory of a run. The original requirement never
// changes; bugs and improvements accumulate as pending work and move to
// FixedIssues once a later pass stops reporting them.
type IterationHistory struct {
	RunID           string              `json:"runId" validate:"required"`
	Requirement     *UserRequirement    `json:"requirement" validate:"required"`
	Snapshots       []IterationSnapshot `json:"snapshots,omitempty"`
	AllBugs         []string            `json:"allBugs,omitempty"`
	AllImprovements []string            `json:"allImprovements,omitempty"`
	AllSuggestions  []string            `json:"allSuggestions,omitempty"`
	FixedIssues     []string            `json:"fixedIssues,omitempty"`
	Outcome         string              `json:"outcome,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// NewIterationHistory starts the history for a fresh run.
func NewIterationHistory(req *UserRequirement) *IterationHistory {
	now := time.Now().UTC()
	return &IterationHistory{
		RunID:       uuid.NewString(),
		Requirement: req,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Append records a finished pass and refolds the pending/fixed bookkeeping.
// A bug or improvement from an earlier pass that this pass no longer reports
// counts as fixed; fixed items never return to the pending lists.
func (h *IterationHistory) Append(snap IterationSnapshot) {
	var bugs, improvements, suggestions []string
	if snap.Session != nil {
		bugs = snap.Session.BugsFound
		suggestions = snap.Session.Suggestions
	}
	if snap.Review != nil {
		for _, issue := range snap.Review.MustFix {
			improvements = append(improvements, issue.Description)
		}
		for _, issue := range snap.Review.ShouldFix {
			improvements = append(improvements, issue.Description)
		}
	}

	// Only passes that reached testing/review can retire pending items.
	if snap.Session != nil || snap.Review != nil {
		h.AllBugs, h.FixedIssues = retireResolved(h.AllBugs, bugs, h.FixedIssues)
		h.AllImprovements, h.FixedIssues = retireResolved(h.AllImprovements, improvements, h.FixedIssues)
	}

	h.AllBugs = appendUnique(h.AllBugs, bugs...)
	h.AllImprovements = appendUnique(h.AllImprovements, improvements...)
	h.AllSuggestions = appendUnique(h.AllSuggestions, suggestions...)

	h.Snapshots = append(h.Snapshots, snap)
	h.UpdatedAt = time.Now().UTC()
}

// LastSnapshot returns the most recent pass, or nil for a fresh history.
func (h *IterationHistory) LastSnapshot() *IterationSnapshot {
	if len(h.Snapshots) == 0 {
		return nil
	}
	return &h.Snapshots[len(h.Snapshots)-1]
}

// BestSnapshot returns the pass with the highest review score that produced
// an artifact. Ties go to the later pass. Nil when no pass has an artifact.
func (h *IterationHistory) BestSnapshot() *IterationSnapshot {
	var best *IterationSnapshot
	for i := range h.Snapshots {
		snap := &h.Snapshots[i]
		if snap.Artifact == nil {
			continue
		}
		if best == nil || snap.Score() >= best.Score() {
			best = snap
		}
	}
	return best
}

// BaselineDesign returns the first design produced in this run. Revisions
// build on it; it is nil only before the first designer pass completes.
func (h *IterationHistory) BaselineDesign() *GameDesignDocument {
	for i := range h.Snapshots {
		if d := h.Snapshots[i].Design; d != nil {
			return d
		}
	}
	return nil
}

// LatestArtifact returns the most recently built artifact, or nil when no
// pass reached the developer.
func (h *IterationHistory) LatestArtifact() *GameArtifact {
	for i := len(h.Snapshots) - 1; i >= 0; i-- {
		if a := h.Snapshots[i].Artifact; a != nil {
			return a
		}
	}
	return nil
}

// LatestDesign returns the most recent design, baseline or revised.
func (h *IterationHistory) LatestDesign() *GameDesignDocument {
	for i := len(h.Snapshots) - 1; i >= 0; i-- {
		if d := h.Snapshots[i].Design; d != nil {
			return d
		}
	}
	return nil
}

// DesignInEffect returns the design governing the given iteration: the most
// recent design produced at or before it. Shortcut passes record no design of
// their own, so this walks back to the pass that did.
func (h *IterationHistory) DesignInEffect(iteration int) *GameDesignDocument {
	var current *GameDesignDocument
	for i := range h.Snapshots {
		if h.Snapshots[i].Iteration > iteration {
			break
		}
		if d := h.Snapshots[i].Design; d != nil {
			current = d
		}
	}
	return current
}

// IterationContext is the accumulated feedback handed to the Designer and
// Developer on revision passes.
type IterationContext struct {
	Requirement         *UserRequirement
	BaselineDesign      *GameDesignDocument
	PendingBugs         []string
	PendingImprovements []string
	Suggestions         []string
	FixedIssues         []string
	Iteration           int
}

// Context assembles the revision context for the next pass.
func (h *IterationHistory) Context() *IterationContext {
	return &IterationContext{
		Requirement:         h.Requirement,
		BaselineDesign:      h.BaselineDesign(),
		PendingBugs:         h.AllBugs,
		PendingImprovements: h.AllImprovements,
		Suggestions:         h.AllSuggestions,
		FixedIssues:         h.FixedIssues,
		Iteration:           len(h.Snapshots) + 1,
	}
}

// retireResolved moves items of pending that do not reappear in current into
// fixed, preserving order.
func retireResolved(pending, current, fixed []string) (remaining, updatedFixed []string) {
	still := make(map[string]bool, len(current))
	for _, item := range current {
		still[item] = true
	}
	updatedFixed = fixed
	for _, item := range pending {
		if still[item] {
			remaining = append(remaining, item)
		} else {
			updatedFixed = appendUnique(updatedFixed, item)
		}
	}
	return remaining, updatedFixed
}

// appendUnique appends items not already present, preserving order.
func appendUnique(dst []string, items ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, existing := range dst {
		seen[existing] = true
	}
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		dst = append(dst, item)
		seen[item] = true
	}
	return dst
}
