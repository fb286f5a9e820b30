package ui

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/gameforge/internal/orchestrator"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/store"
)

// RenderRunList renders stored run summaries to stdout, newest first.
func RenderRunList(runs []store.RunSummary) {
	accepted := 0
	for _, r := range runs {
		if r.Outcome == string(orchestrator.OutcomeAccepted) {
			accepted++
		}
	}

	// Header summary
	fmt.Printf(" 🎮 Runs: %d total (%d accepted • %d unfinished)\n", len(runs), accepted, len(runs)-accepted)
	fmt.Println(StyleSubtle.Render(strings.Repeat("─", 50)))

	table := &Table{
		Headers:  []string{"ID", "Game", "Outcome", "Passes", "Bugs", "Updated"},
		MaxWidth: 36,
	}

	for _, r := range runs {
		title := r.Title
		if title == "" {
			// Requests are user text and may be non-ASCII; truncate by runes.
			title = utils.Truncate(r.Request, 36)
		}

		table.Rows = append(table.Rows, []string{
			TruncateID(r.RunID),
			title,
			OutcomeLabel(r.Outcome),
			fmt.Sprintf("%d", r.Iterations),
			fmt.Sprintf("%d", r.PendingBugs),
			r.UpdatedAt.Format("Jan 02 15:04"),
		})
	}

	fmt.Print(table.Render())
}

// OutcomeLabel renders a stored run outcome with an icon. Runs without a
// terminal outcome were interrupted mid-flight and can be resumed.
func OutcomeLabel(outcome string) string {
	switch outcome {
	case string(orchestrator.OutcomeAccepted):
		return "✅ accepted"
	case string(orchestrator.OutcomeAbandoned):
		return "❌ abandoned"
	default:
		return "⏸  interrupted"
	}
}
