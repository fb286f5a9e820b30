/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/internal/config"
	"github.com/josephgoksu/gameforge/internal/orchestrator"
	"github.com/josephgoksu/gameforge/internal/ui"
	"github.com/spf13/cobra"
)

// agentsCmd represents the agents command
var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Show the pipeline crew and the models behind it",
	Long: `Show the four agents that build your game, in the order they run,
along with the model each one will use.

Per-role overrides from llm.agents.<role> in the config are reflected here,
so this is the quickest way to confirm which model does what.

Examples:
  gameforge agents       # The crew and their models
  gameforge agents -v    # Include each agent's task list
  gameforge agents --json`,
	Args: cobra.NoArgs,
	RunE: runAgents,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

// roleStage maps each role to the pipeline stage it serves, for color accents.
func roleStage(role agents.Role) orchestrator.Stage {
	switch role {
	case agents.RoleDesigner:
		return orchestrator.StageDesigning
	case agents.RoleDeveloper:
		return orchestrator.StageDeveloping
	case agents.RolePlayer:
		return orchestrator.StageTesting
	default:
		return orchestrator.StageReviewing
	}
}

func runAgents(cmd *cobra.Command, args []string) error {
	crew, err := config.LoadCrewConfig()
	if err != nil {
		return fmt.Errorf("resolve crew config: %w", err)
	}

	if isJSON() {
		type agentJSON struct {
			agents.AgentInfo
			Provider string `json:"provider"`
			Model    string `json:"model"`
		}
		out := make([]agentJSON, 0, len(agents.Registry))
		for _, info := range agents.Registry {
			cfg := crew[info.Role]
			out = append(out, agentJSON{
				AgentInfo: info,
				Provider:  string(cfg.LLM.Provider),
				Model:     cfg.LLM.Model,
			})
		}
		return printJSON(out)
	}

	items := make([]ui.AgentDisplay, 0, len(agents.Registry))
	for _, info := range agents.Registry {
		cfg := crew[info.Role]
		temp := ""
		if cfg.Temperature != nil {
			temp = fmt.Sprintf("%.1f", *cfg.Temperature)
		}
		items = append(items, ui.AgentDisplay{
			Name:        info.Name,
			Stage:       string(roleStage(info.Role)),
			Description: info.Description,
			Tasks:       info.Tasks,
			Model:       fmt.Sprintf("%s / %s", cfg.LLM.Provider, cfg.LLM.Model),
			Temperature: temp,
		})
	}
	ui.RenderAgentList(items, isVerbose())
	return nil
}
