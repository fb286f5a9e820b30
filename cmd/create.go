/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/josephgoksu/gameforge/internal/logger"
	"github.com/josephgoksu/gameforge/internal/ui"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [description]",
	Short: "Create a game from a plain-language description",
	Long: `Create runs the full agent pipeline for one game request.

The Designer turns your description into a design document, the Developer
builds an HTML5 implementation, the Player playtests it, and the Reviewer
scores the result. The crew keeps iterating until the game clears the
delivery bar or the iteration budget runs out.

Progress is checkpointed after every pass, so an interrupted run can be
picked up later with 'gameforge resume'.

Examples:
  gameforge create "a breakout clone with neon colors and powerups"
  gameforge create                      # opens an editor for the description
  gameforge create "snake with portals" --iterations 3
  gameforge create "math quiz race" --genre puzzle --audience "kids 6-10" \
    --constraint "no reading required" --constraint "mouse only"`,
	Args: cobra.ArbitraryArgs,
	RunE: runCreate,
}

var (
	createGenre       string
	createAudience    string
	createConstraints []string
	createIterations  int
	createYes         bool
)

func init() {
	rootCmd.AddCommand(createCmd)

	genres := make([]string, 0, len(models.AllGenres()))
	for _, g := range models.AllGenres() {
		genres = append(genres, string(g))
	}

	createCmd.Flags().StringVar(&createGenre, "genre", "", "Genre hint for the Designer ("+strings.Join(genres, ", ")+")")
	createCmd.Flags().StringVar(&createAudience, "audience", "", "Who the game is for, e.g. \"kids 6-10\" or \"office coffee breaks\"")
	createCmd.Flags().StringArrayVar(&createConstraints, "constraint", nil, "Constraint the crew must respect (repeatable)")
	createCmd.Flags().IntVar(&createIterations, "iterations", 0, "Override the iteration budget for this run")
	createCmd.Flags().Int("threshold", 0, "Override the delivery score bar for this run")
	createCmd.Flags().String("output", "", "Deliver the game under this directory")
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "Skip the pre-run confirmation")

	// Unchanged flags fall through to config and defaults; changed ones win.
	_ = viper.BindPFlag("pipeline.deliveryThreshold", createCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("pipeline.outputDir", createCmd.Flags().Lookup("output"))
}

func runCreate(cmd *cobra.Command, args []string) error {
	// Graceful shutdown context listening for SIGINT (Ctrl+C)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		if !ui.IsInteractive() {
			return fmt.Errorf("a game description is required: gameforge create \"<description>\"")
		}
		var err error
		description, err = ui.PromptGameDescription("a cozy puzzle game where gravity flips every ten seconds")
		if err != nil {
			return err
		}
		description = strings.TrimSpace(description)
	}
	if description == "" {
		return fmt.Errorf("a game description is required")
	}
	logger.SetLastInput(description)

	req := models.NewUserRequirement(description)
	req.Genre = strings.ToLower(strings.TrimSpace(createGenre))
	req.TargetAudience = strings.TrimSpace(createAudience)
	for _, c := range createConstraints {
		if c = strings.TrimSpace(c); c != "" {
			req.Constraints = append(req.Constraints, c)
		}
	}

	if err := ensureLLMReady(); err != nil {
		return err
	}

	if !createYes && ui.IsInteractive() {
		fmt.Println(ui.RenderInfoPanel("📋 Game request", requestSummary(req)))
		if !confirmOrAbort("Put the crew on it? [y/N]: ") {
			return nil
		}
	}

	ui.RenderPageHeader("GameForge", "Your crew is on it: "+utils.Truncate(description, 64))

	return runPipeline(ctx, "create", req, nil, createIterations)
}

// requestSummary renders the requirement for the pre-run confirmation.
func requestSummary(req *models.UserRequirement) string {
	var b strings.Builder
	b.WriteString(ui.WrapText(req.Description, 56))
	if req.Genre != "" {
		fmt.Fprintf(&b, "\nGenre:    %s", req.Genre)
	}
	if req.TargetAudience != "" {
		fmt.Fprintf(&b, "\nAudience: %s", req.TargetAudience)
	}
	for i, c := range req.Constraints {
		if i == 0 {
			fmt.Fprintf(&b, "\nConstraints:")
		}
		fmt.Fprintf(&b, "\n  • %s", c)
	}
	fmt.Fprintf(&b, "\n\nUp to %d passes, delivery bar %d/100.",
		effectiveIterations(createIterations), GetConfig().Pipeline.DeliveryThreshold)
	return b.String()
}

func effectiveIterations(override int) int {
	if override > 0 {
		return override
	}
	return GetConfig().Pipeline.MaxIterations
}
