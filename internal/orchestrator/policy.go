/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package orchestrator

import (
	"fmt"

	"github.com/josephgoksu/gameforge/models"
)

// Decision is the routing verdict after a review.
type Decision struct {
	Accept bool
	// Next is the stage a revision re-enters: DESIGNING or DEVELOPING.
	// Meaningless when Accept is true.
	Next   Stage
	Reason string
}

// Route decides what happens after a review. It is a pure function of the
// review and the threshold so the branching policy stays independently
// testable.
//
// A score at or above the threshold accepts the game outright. Below it, the
// blocking issues pick the revision path: any design-category issue sends the
// loop back to DESIGNING even when code issues are also present, because a
// redesign subsumes a rebuild. Code-only issues take the DEVELOPING shortcut,
// and a low score with no categorized issues at all defaults to DEVELOPING.
func Route(review *models.GameReview, threshold int) Decision {
	if review.OverallScore >= threshold {
		return Decision{
			Accept: true,
			Reason: fmt.Sprintf("score %d meets the delivery threshold %d", review.OverallScore, threshold),
		}
	}

	issues := review.BlockingIssues()
	if models.HasCategory(issues, models.CategoryDesign) {
		return Decision{
			Next:   StageDesigning,
			Reason: fmt.Sprintf("score %d below threshold %d with design issues to rework", review.OverallScore, threshold),
		}
	}
	if models.HasCategory(issues, models.CategoryCode) {
		return Decision{
			Next:   StageDeveloping,
			Reason: fmt.Sprintf("score %d below threshold %d with code issues to fix", review.OverallScore, threshold),
		}
	}
	return Decision{
		Next:   StageDeveloping,
		Reason: fmt.Sprintf("score %d below threshold %d with no categorized issues; defaulting to a rebuild", review.OverallScore, threshold),
	}
}
