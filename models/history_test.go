package models

import (
	"encoding/json"
	"testing"
	"time"
)

func snapshotWithFeedback(iter, score int, bugs, suggestions []string) IterationSnapshot {
	design := validDesign()
	return IterationSnapshot{
		Iteration: iter,
		Design:    &design,
		Artifact: &GameArtifact{
			Files:    []CodeFile{{Filename: "index.html", Content: "<html>"}},
			MainFile: "index.html",
		},
		Session: &PlaySession{
			SessionID:       "session-1",
			DurationSeconds: 30,
			BugsFound:       bugs,
			Suggestions:     suggestions,
			FunScore:        score,
		},
		Review: &GameReview{
			OverallScore: score,
			MustFix:      []ReviewIssue{{Category: CategoryCode, Description: "score does not update"}},
		},
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}
}

func TestIterationHistory_Append_AccumulatesFeedback(t *testing.T) {
	h := NewIterationHistory(NewUserRequirement("A simple snake game"))

	h.Append(snapshotWithFeedback(1, 60,
		[]string{"tiles flicker", "score stuck"},
		[]string{"add sound"},
	))

	if len(h.Snapshots) != 1 {
		t.Fatalf("Snapshots = %d, want 1", len(h.Snapshots))
	}
	if len(h.AllBugs) != 2 {
		t.Errorf("AllBugs = %v, want 2 entries", h.AllBugs)
	}
	if len(h.AllImprovements) != 1 || h.AllImprovements[0] != "score does not update" {
		t.Errorf("AllImprovements = %v", h.AllImprovements)
	}
	if len(h.AllSuggestions) != 1 {
		t.Errorf("AllSuggestions = %v", h.AllSuggestions)
	}

	// Duplicate feedback in a later pass must not double up.
	h.Append(snapshotWithFeedback(2, 70,
		[]string{"tiles flicker", "score stuck"},
		[]string{"add sound", "add combo bonus"},
	))
	if len(h.AllBugs) != 2 {
		t.Errorf("AllBugs after dup pass = %v, want 2 entries", h.AllBugs)
	}
	if len(h.AllSuggestions) != 2 {
		t.Errorf("AllSuggestions = %v, want 2 entries", h.AllSuggestions)
	}
}

func TestIterationHistory_RetiresFixedIssues(t *testing.T) {
	h := NewIterationHistory(NewUserRequirement("A simple snake game"))

	h.Append(snapshotWithFeedback(1, 60, []string{"tiles flicker", "score stuck"}, nil))

	// Second pass no longer reports "tiles flicker": it counts as fixed.
	h.Append(snapshotWithFeedback(2, 72, []string{"score stuck"}, nil))

	if len(h.AllBugs) != 1 || h.AllBugs[0] != "score stuck" {
		t.Errorf("AllBugs = %v, want only the still-open bug", h.AllBugs)
	}
	found := false
	for _, fixed := range h.FixedIssues {
		if fixed == "tiles flicker" {
			found = true
		}
	}
	if !found {
		t.Errorf("FixedIssues = %v, want to contain the retired bug", h.FixedIssues)
	}
}

func TestIterationHistory_BestSnapshot(t *testing.T) {
	h := NewIterationHistory(NewUserRequirement("A simple snake game"))
	if best := h.BestSnapshot(); best != nil {
		t.Fatalf("BestSnapshot() on empty history = %+v, want nil", best)
	}

	h.Append(snapshotWithFeedback(1, 60, nil, nil))
	h.Append(snapshotWithFeedback(2, 72, nil, nil))
	h.Append(snapshotWithFeedback(3, 72, nil, nil))
	h.Append(snapshotWithFeedback(4, 55, nil, nil))

	best := h.BestSnapshot()
	if best == nil {
		t.Fatal("BestSnapshot() = nil")
	}
	// Ties go to the later pass.
	if best.Iteration != 3 {
		t.Errorf("BestSnapshot().Iteration = %d, want 3", best.Iteration)
	}
}

func TestIterationHistory_BestSnapshot_SkipsArtifactlessPasses(t *testing.T) {
	h := NewIterationHistory(NewUserRequirement("A simple snake game"))

	design := validDesign()
	h.Append(IterationSnapshot{Iteration: 1, Design: &design})

	if best := h.BestSnapshot(); best != nil {
		t.Errorf("BestSnapshot() = %+v, want nil when no pass has an artifact", best)
	}

	h.Append(snapshotWithFeedback(2, 40, nil, nil))
	best := h.BestSnapshot()
	if best == nil || best.Iteration != 2 {
		t.Errorf("BestSnapshot() = %+v, want the only artifact-bearing pass", best)
	}
}

func TestIterationHistory_Context(t *testing.T) {
	h := NewIterationHistory(NewUserRequirement("A platformer with double jump"))
	h.Append(snapshotWithFeedback(1, 60, []string{"jump too floaty"}, []string{"add coyote time"}))

	ctx := h.Context()
	if ctx.Requirement == nil || ctx.Requirement.Description != "A platformer with double jump" {
		t.Errorf("Context().Requirement = %+v", ctx.Requirement)
	}
	if ctx.BaselineDesign == nil || ctx.BaselineDesign.Title != "Snake Classic" {
		t.Errorf("Context().BaselineDesign = %+v, want iteration 1 design", ctx.BaselineDesign)
	}
	if ctx.Iteration != 2 {
		t.Errorf("Context().Iteration = %d, want 2", ctx.Iteration)
	}
	if len(ctx.PendingBugs) != 1 || ctx.PendingBugs[0] != "jump too floaty" {
		t.Errorf("Context().PendingBugs = %v", ctx.PendingBugs)
	}
}

func TestIterationHistory_JSONRoundTrip(t *testing.T) {
	h := NewIterationHistory(NewUserRequirement("A simple snake game"))
	h.Append(snapshotWithFeedback(1, 68, []string{"flicker"}, []string{"sound"}))
	h.Outcome = "ABANDONED"

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var loaded IterationHistory
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if loaded.RunID != h.RunID {
		t.Errorf("RunID = %q, want %q", loaded.RunID, h.RunID)
	}
	if len(loaded.Snapshots) != 1 || loaded.Snapshots[0].Review.OverallScore != 68 {
		t.Errorf("Snapshots = %+v", loaded.Snapshots)
	}
	if loaded.Outcome != "ABANDONED" {
		t.Errorf("Outcome = %q", loaded.Outcome)
	}
}
