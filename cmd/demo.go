/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"os"
	"os/signal"

	"github.com/josephgoksu/gameforge/internal/logger"
	"github.com/josephgoksu/gameforge/internal/ui"
	"github.com/josephgoksu/gameforge/models"
	"github.com/spf13/cobra"
)

// demoDescription is the canned request the demo pipeline runs. Small and
// familiar on purpose: it keeps the demo cheap while still exercising every
// agent in the crew.
const demoDescription = "A classic snake game. The snake moves on a grid, grows when it eats food, " +
	"and the game ends when it hits a wall or itself. Show the score, speed up as the snake grows, " +
	"and use arrow keys to steer."

// demoMaxIterations caps the demo loop so a demo never burns a full budget.
const demoMaxIterations = 2

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the pipeline on a built-in snake game request",
	Long: `Demo runs the whole crew against a canned snake game description.

It is the fastest way to see the Designer, Developer, Player and Reviewer
work together, and to confirm your provider credentials are set up. The
demo is capped at two passes, so it may deliver a best-effort build rather
than a fully accepted game.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	// Graceful shutdown context listening for SIGINT (Ctrl+C)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.SetLastInput(demoDescription)

	if err := ensureLLMReady(); err != nil {
		return err
	}

	ui.RenderPageHeader("GameForge demo", "Building a classic snake game in up to 2 passes")

	return runPipeline(ctx, "demo", models.NewUserRequirement(demoDescription), nil, demoMaxIterations)
}
