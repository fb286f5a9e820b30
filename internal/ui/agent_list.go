package ui

import (
	"fmt"
	"strings"
)

// AgentDisplay pairs an agent's registry metadata with the model actually
// resolved for it, so the listing reflects per-role overrides.
type AgentDisplay struct {
	Name        string
	Stage       string // pipeline stage the role serves, used for color accents
	Description string
	Tasks       []string
	Model       string // "provider / model"
	Temperature string // "" when the provider default applies
}

// RenderAgentList renders the pipeline crew to stdout in pipeline order.
// Verbose mode adds each agent's task list.
func RenderAgentList(items []AgentDisplay, verbose bool) {
	fmt.Printf(" 🤖 Crew: %d agents, run in this order each pass\n", len(items))
	fmt.Println(StyleSubtle.Render(strings.Repeat("─", 50)))

	for i, a := range items {
		style := StageStyle(a.Stage)
		meta := a.Model
		if a.Temperature != "" {
			meta += " · temp " + a.Temperature
		}
		fmt.Printf(" %d. %s  %s\n", i+1, style.Render(a.Name), StyleSubtle.Render(meta))
		fmt.Printf("    %s\n", StyleText.Render(a.Description))
		if verbose {
			for _, task := range a.Tasks {
				fmt.Printf("      %s %s\n", StyleSubtle.Render("•"), task)
			}
		}
		if i < len(items)-1 {
			fmt.Println()
		}
	}
}
