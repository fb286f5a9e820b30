/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/josephgoksu/gameforge/internal/logger"
	"github.com/josephgoksu/gameforge/internal/orchestrator"
	"github.com/josephgoksu/gameforge/internal/ui"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/store"
	"github.com/spf13/cobra"
)

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume [run-id]",
	Short: "Pick up an interrupted or abandoned run",
	Long: `Resume re-enters the pipeline for a stored run, carrying over its design,
best build and all accumulated playtest feedback.

The run ID may be shortened to any unambiguous prefix; 'gameforge runs'
lists the stored runs. A resumed run always gets at least one fresh pass,
even when the original iteration budget was spent.

Examples:
  gameforge resume 3f8a2c1d
  gameforge resume --last`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResume,
}

var resumeLast bool

func init() {
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().BoolVar(&resumeLast, "last", false, "Resume the most recent unfinished run")
}

func runResume(cmd *cobra.Command, args []string) error {
	// Graceful shutdown context listening for SIGINT (Ctrl+C)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	histStore, err := GetHistoryStore()
	if err != nil {
		return err
	}

	runID := ""
	if len(args) == 1 {
		runID = args[0]
	}
	if runID == "" {
		if !resumeLast {
			_ = histStore.Close()
			return fmt.Errorf("provide a run ID or use --last; 'gameforge runs' lists stored runs")
		}
		runID, err = lastUnfinishedRunID(histStore)
		if err != nil {
			_ = histStore.Close()
			return err
		}
	}

	history, err := histStore.Load(runID)
	// The pipeline reopens the store with its own lifecycle.
	_ = histStore.Close()
	if err != nil {
		return err
	}

	logger.SetLastInput(history.Requirement.Description)

	if err := ensureLLMReady(); err != nil {
		return err
	}

	subtitle := fmt.Sprintf("Resuming run %s after %d pass(es): %s",
		ui.TruncateID(history.RunID), len(history.Snapshots), utils.Truncate(history.Requirement.Description, 48))
	ui.RenderPageHeader("GameForge", subtitle)

	return runPipeline(ctx, "resume", nil, history, 0)
}

// lastUnfinishedRunID finds the newest stored run that has not yet produced
// an accepted game.
func lastUnfinishedRunID(histStore store.HistoryStore) (string, error) {
	summaries, err := histStore.List()
	if err != nil {
		return "", err
	}
	for _, s := range summaries {
		if s.Outcome != string(orchestrator.OutcomeAccepted) {
			return s.RunID, nil
		}
	}
	return "", fmt.Errorf("no unfinished runs to resume; every stored run is already accepted")
}
