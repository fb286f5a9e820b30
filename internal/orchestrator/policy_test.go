package orchestrator

import (
	"testing"

	"github.com/josephgoksu/gameforge/models"
)

func TestRoute(t *testing.T) {
	designIssue := models.ReviewIssue{Category: models.CategoryDesign, Description: "the goal is unclear"}
	codeIssue := models.ReviewIssue{Category: models.CategoryCode, Description: "restart button does nothing"}

	tests := []struct {
		name       string
		review     models.GameReview
		threshold  int
		wantAccept bool
		wantNext   Stage
	}{
		{
			name:       "score at threshold accepts",
			review:     models.GameReview{OverallScore: 75},
			threshold:  75,
			wantAccept: true,
		},
		{
			name:       "score above threshold accepts even with open issues",
			review:     models.GameReview{OverallScore: 90, MustFix: []models.ReviewIssue{codeIssue}},
			threshold:  75,
			wantAccept: true,
		},
		{
			name:      "code issues take the developer shortcut",
			review:    models.GameReview{OverallScore: 50, MustFix: []models.ReviewIssue{codeIssue}},
			threshold: 75,
			wantNext:  StageDeveloping,
		},
		{
			name:      "design issues go back to the designer",
			review:    models.GameReview{OverallScore: 50, MustFix: []models.ReviewIssue{designIssue}},
			threshold: 75,
			wantNext:  StageDesigning,
		},
		{
			name:      "design wins when both categories are present",
			review:    models.GameReview{OverallScore: 50, MustFix: []models.ReviewIssue{codeIssue, designIssue}},
			threshold: 75,
			wantNext:  StageDesigning,
		},
		{
			name:      "should-fix issues route when nothing is must-fix",
			review:    models.GameReview{OverallScore: 60, ShouldFix: []models.ReviewIssue{designIssue}},
			threshold: 75,
			wantNext:  StageDesigning,
		},
		{
			name:      "must-fix issues outrank should-fix issues",
			review:    models.GameReview{OverallScore: 60, MustFix: []models.ReviewIssue{codeIssue}, ShouldFix: []models.ReviewIssue{designIssue}},
			threshold: 75,
			wantNext:  StageDeveloping,
		},
		{
			name:      "no categorized issues defaults to a rebuild",
			review:    models.GameReview{OverallScore: 60},
			threshold: 75,
			wantNext:  StageDeveloping,
		},
		{
			name:       "zero threshold accepts a zero score",
			review:     models.GameReview{OverallScore: 0},
			threshold:  0,
			wantAccept: true,
		},
		{
			name:      "score just below threshold does not accept",
			review:    models.GameReview{OverallScore: 74},
			threshold: 75,
			wantNext:  StageDeveloping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(&tt.review, tt.threshold)
			if got.Accept != tt.wantAccept {
				t.Errorf("Accept = %v, want %v", got.Accept, tt.wantAccept)
			}
			if !tt.wantAccept && got.Next != tt.wantNext {
				t.Errorf("Next = %q, want %q", got.Next, tt.wantNext)
			}
			if got.Reason == "" {
				t.Error("Reason should never be empty")
			}
		})
	}
}

// Route must be deterministic: same review, same verdict, every time.
func TestRoute_Deterministic(t *testing.T) {
	review := models.GameReview{
		OverallScore: 40,
		MustFix: []models.ReviewIssue{
			{Category: models.CategoryCode, Description: "score resets mid-game"},
			{Category: models.CategoryDesign, Description: "no difficulty curve"},
		},
	}
	first := Route(&review, 75)
	for i := 0; i < 100; i++ {
		if got := Route(&review, 75); got != first {
			t.Fatalf("Route verdict changed between calls: %+v vs %+v", got, first)
		}
	}
	if first.Next != StageDesigning {
		t.Errorf("mixed categories must route to DESIGNING, got %q", first.Next)
	}
}
