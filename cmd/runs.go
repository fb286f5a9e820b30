/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/gameforge/internal/ui"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/spf13/cobra"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored pipeline runs",
	Long: `List every stored run with its outcome, pass count, and pending bugs.

Runs without a terminal outcome were interrupted and can be picked up
again with 'gameforge resume <run-id>'. Any unambiguous ID prefix works.

Examples:
  gameforge runs
  gameforge runs --json
  gameforge runs delete 3f8a2c1d`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a stored run",
	Long: `Delete one stored run's history. The delivered game directory, if any,
is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runRunsDelete,
}

var runsDeleteForce bool

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsDeleteCmd)

	runsDeleteCmd.Flags().BoolVarP(&runsDeleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runRuns(cmd *cobra.Command, args []string) error {
	histStore, err := GetHistoryStore()
	if err != nil {
		return err
	}
	defer func() { _ = histStore.Close() }()

	summaries, err := histStore.List()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if isJSON() {
		return printJSON(summaries)
	}

	if len(summaries) == 0 {
		cmd.Println("No runs stored yet.")
		cmd.Println("Start one with: gameforge create \"your game idea\"")
		return nil
	}

	ui.RenderRunList(summaries)
	fmt.Println()
	fmt.Println(ui.StyleSubtle.Render(" resume with: gameforge resume <id>"))
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	histStore, err := GetHistoryStore()
	if err != nil {
		return err
	}
	defer func() { _ = histStore.Close() }()

	runID := args[0]

	// Resolve the prefix first so the confirmation names the exact run.
	history, err := histStore.Load(runID)
	if err != nil {
		return err
	}

	if !runsDeleteForce {
		prompt := fmt.Sprintf("Delete run %s (%s) permanently? [y/N]: ",
			ui.TruncateID(history.RunID), utils.Truncate(history.Requirement.Description, 40))
		if !confirmOrAbort(prompt) {
			return nil
		}
	}

	if err := histStore.Delete(history.RunID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	fmt.Printf("✅ Deleted run %s\n", ui.TruncateID(history.RunID))
	return nil
}
