package models

// IssueCategory tells the orchestrator which stage a review finding points
// back to.
type IssueCategory string

const (
	CategoryDesign IssueCategory = "design"
	CategoryCode   IssueCategory = "code"
)

// NormalizeCategory maps loose model output onto a known category. Anything
// that is not recognizably a design concern is treated as a code concern,
// which keeps revisions on the cheaper developer path.
func NormalizeCategory(s string) IssueCategory {
	switch normalizeToken(s) {
	case "design", "gameplay", "mechanics", "concept":
		return CategoryDesign
	default:
		return CategoryCode
	}
}

// ReviewIssue is one finding from the Reviewer.
type ReviewIssue struct {
	Category    IssueCategory `json:"category" validate:"required,oneof=design code"`
	Description string        `json:"description" validate:"required"`
}

// PlaySession is the Player's report from a simulated playthrough.
type PlaySession struct {
	SessionID       string   `json:"sessionId" validate:"required"`
	DurationSeconds int      `json:"durationSeconds" validate:"gte=0"`
	BugsFound       []string `json:"bugsFound,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
	FunScore        int      `json:"funScore" validate:"gte=0,lte=100"`
	Summary         string   `json:"summary,omitempty"`
}

// GameReview is the Reviewer's verdict on one iteration. OverallScore against
// the delivery threshold decides acceptance; MustFix/ShouldFix categories
// decide where a revision loops back to. ReadyForDelivery is the model's own
// opinion and is advisory only.
type GameReview struct {
	OverallScore     int           `json:"overallScore" validate:"gte=0,lte=100"`
	MustFix          []ReviewIssue `json:"mustFix,omitempty" validate:"dive"`
	ShouldFix        []ReviewIssue `json:"shouldFix,omitempty" validate:"dive"`
	Strengths        []string      `json:"strengths,omitempty"`
	Weaknesses       []string      `json:"weaknesses,omitempty"`
	Summary          string        `json:"summary,omitempty"`
	ReadyForDelivery bool          `json:"readyForDelivery"`
}

// BlockingIssues returns the findings that drive a revision: all MustFix
// items, or the ShouldFix items when nothing is marked must-fix.
func (r *GameReview) BlockingIssues() []ReviewIssue {
	if len(r.MustFix) > 0 {
		return r.MustFix
	}
	return r.ShouldFix
}

// HasCategory reports whether any of the given issues is in cat.
func HasCategory(issues []ReviewIssue, cat IssueCategory) bool {
	for _, issue := range issues {
		if issue.Category == cat {
			return true
		}
	}
	return false
}
