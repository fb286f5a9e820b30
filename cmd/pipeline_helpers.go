/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/internal/config"
	"github.com/josephgoksu/gameforge/internal/orchestrator"
	"github.com/josephgoksu/gameforge/internal/telemetry"
	"github.com/josephgoksu/gameforge/internal/ui"
	"github.com/josephgoksu/gameforge/models"
	"github.com/josephgoksu/gameforge/store"
)

// runPipeline assembles the crew and drives one development run end to end.
// A nil history starts a fresh run from req; a non-nil history resumes where
// that run left off. maxIterations overrides the configured budget when
// positive.
func runPipeline(ctx context.Context, mode string, req *models.UserRequirement, history *models.IterationHistory, maxIterations int) error {
	crew, err := buildCrew()
	if err != nil {
		return err
	}

	histStore, err := GetHistoryStore()
	if err != nil {
		return err
	}
	defer func() { _ = histStore.Close() }()

	opts := pipelineOptions(histStore, nil)
	if maxIterations > 0 {
		opts.MaxIterations = maxIterations
	}

	// Telemetry setup may ask for consent, so it runs before the spinner
	// takes over the terminal.
	tc := telemetry.Setup(GetVersion())
	defer func() { _ = tc.Close() }()

	llmCfg, _ := config.LoadLLMConfig()
	if history != nil {
		telemetry.TrackRunResumed(tc, string(llmCfg.Provider), llmCfg.Model)
	} else {
		telemetry.TrackRunStarted(tc, mode, string(llmCfg.Provider), llmCfg.Model)
	}

	display := newProgressDisplay(opts.MaxIterations)
	opts.OnProgress = display.Handle

	pipeline, err := orchestrator.New(crew, opts)
	if err != nil {
		display.Stop()
		return err
	}

	started := time.Now()
	var result *orchestrator.Result
	var runErr error
	if history != nil {
		result, runErr = pipeline.Resume(ctx, history)
	} else {
		result, runErr = pipeline.DevelopGame(ctx, req)
	}
	display.Stop()

	return finishRun(result, runErr, tc, started)
}

// progressDisplay renders orchestrator progress. Interactive terminals get
// one spinner whose text follows the pipeline; everything else gets plain
// stage lines.
type progressDisplay struct {
	spinner       *ui.Spinner
	maxIterations int
}

func newProgressDisplay(maxIterations int) *progressDisplay {
	p := &progressDisplay{maxIterations: maxIterations}
	if ui.IsInteractive() {
		p.spinner = ui.NewSpinner("Starting the crew...")
		p.spinner.Start()
	}
	return p
}

// Handle is the orchestrator's OnProgress callback. The orchestrator calls
// it from the run goroutine, never concurrently.
func (p *progressDisplay) Handle(e orchestrator.ProgressEvent) {
	banner := ui.StageBanner(e.Iteration, p.maxIterations, string(e.Stage), stageAgent(e.Stage))
	if e.Message != "" {
		banner += " " + ui.StyleSubtle.Render(e.Message)
	}
	if p.spinner != nil {
		p.spinner.SetSuffix(banner)
		return
	}
	fmt.Println(banner)
}

func (p *progressDisplay) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

// stageAgent names the agent that works a stage.
func stageAgent(stage orchestrator.Stage) string {
	switch stage {
	case orchestrator.StageDesigning:
		return agents.RoleDesigner.Label()
	case orchestrator.StageDeveloping:
		return agents.RoleDeveloper.Label()
	case orchestrator.StageTesting:
		return agents.RolePlayer.Label()
	case orchestrator.StageReviewing:
		return agents.RoleReviewer.Label()
	default:
		return string(stage)
	}
}

// finishRun renders the terminal outcome, delivers whatever is deliverable,
// and reports the run to telemetry. It is shared by create, demo and resume.
func finishRun(result *orchestrator.Result, runErr error, tc telemetry.Client, started time.Time) error {
	outcome := telemetryOutcome(result, runErr)
	telemetry.TrackRunFinished(tc, outcome, runIterations(result), runScore(result), time.Since(started))

	if result == nil {
		return runErr
	}

	switch {
	case result.Outcome == orchestrator.OutcomeAccepted:
		return renderAccepted(result)
	case errors.Is(runErr, context.Canceled):
		renderInterrupted(result)
		return nil
	default:
		return renderAbandoned(result, runErr)
	}
}

// renderAccepted delivers the accepted game and shows where it landed.
func renderAccepted(result *orchestrator.Result) error {
	dir, err := deliver(result)
	if err != nil {
		return fmt.Errorf("the game was accepted but could not be written: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title:      %s\n", result.Design.Title)
	fmt.Fprintf(&b, "Score:      %s\n", renderScore(result))
	fmt.Fprintf(&b, "Iterations: %d\n", result.Iterations)
	fmt.Fprintf(&b, "Delivered:  %s", dir)
	if result.Review != nil && result.Review.Summary != "" {
		fmt.Fprintf(&b, "\n\n%s", ui.WrapText(result.Review.Summary, 56))
	}

	fmt.Println()
	fmt.Println(ui.RenderSuccessPanel("🎉 Game accepted", b.String()))
	entry, ok := result.Artifact.EntryFile()
	if ok {
		fmt.Printf("Open %s in a browser to play.\n", entry.Filename)
	}
	return nil
}

// renderInterrupted confirms that a cancelled run kept its checkpoint.
func renderInterrupted(result *orchestrator.Result) {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress through %d completed pass(es) is saved.\n", result.Iterations)
	fmt.Fprintf(&b, "Resume with: gameforge resume %s", ui.TruncateID(result.History.RunID))

	fmt.Println()
	fmt.Println(ui.RenderWarningPanel("⏸  Run interrupted", b.String()))
}

// renderAbandoned reports an exhausted or failed run. When the run built a
// playable artifact along the way, the best one is still delivered.
func renderAbandoned(result *orchestrator.Result, runErr error) error {
	if result.Artifact != nil {
		dir, err := deliver(result)
		if err != nil {
			return fmt.Errorf("best-effort delivery failed: %w", err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Reason:     %s\n", result.Reason)
		fmt.Fprintf(&b, "Best score: %s\n", renderScore(result))
		fmt.Fprintf(&b, "Delivered:  %s\n", dir)
		fmt.Fprintf(&b, "Resume with: gameforge resume %s", ui.TruncateID(result.History.RunID))

		fmt.Println()
		fmt.Println(ui.RenderWarningPanel("📦 Best attempt delivered", b.String()))
		LogError("run ended without acceptance", runErr)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Reason: %s", result.Reason)
	if result.History != nil && len(result.History.Snapshots) > 0 {
		fmt.Fprintf(&b, "\nResume with: gameforge resume %s", ui.TruncateID(result.History.RunID))
	}

	fmt.Println()
	fmt.Println(ui.RenderErrorPanel("❌ Run abandoned", b.String()))
	if runErr != nil {
		return runErr
	}
	return nil
}

// deliver writes the run's game to the output directory.
func deliver(result *orchestrator.Result) (string, error) {
	writer := store.NewDeliveryWriter(GetConfig().Pipeline.OutputDir)
	return writer.Deliver(result.Design, result.Artifact, result.Review)
}

// renderScore formats the review score against the delivery bar.
func renderScore(result *orchestrator.Result) string {
	if result.Review == nil {
		return "not reviewed"
	}
	threshold := GetConfig().Pipeline.DeliveryThreshold
	return ui.ScoreStyle(result.Review.OverallScore, threshold).Render(
		fmt.Sprintf("%d/100", result.Review.OverallScore))
}

func runIterations(result *orchestrator.Result) int {
	if result == nil {
		return 0
	}
	return result.Iterations
}

func runScore(result *orchestrator.Result) int {
	if result == nil || result.Review == nil {
		return -1
	}
	return result.Review.OverallScore
}

// telemetryOutcome maps a run result onto the coarse reported outcome.
func telemetryOutcome(result *orchestrator.Result, runErr error) string {
	switch {
	case result == nil:
		return telemetry.OutcomeFailed
	case result.Outcome == orchestrator.OutcomeAccepted:
		return telemetry.OutcomeAccepted
	case errors.Is(runErr, context.Canceled):
		return telemetry.OutcomeCanceled
	case runErr != nil:
		return telemetry.OutcomeFailed
	default:
		return telemetry.OutcomeAbandoned
	}
}
