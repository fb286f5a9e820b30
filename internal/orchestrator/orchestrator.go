/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/josephgoksu/gameforge/internal/agents"
	"github.com/josephgoksu/gameforge/models"
	"github.com/josephgoksu/gameforge/types"
)

// Orchestrator drives the crew through the development loop. The loop is
// strictly sequential: each stage's output is the next stage's input, so no
// two agent calls for the same run ever overlap.
type Orchestrator struct {
	crew *agents.Crew
	opts Options
}

// New validates the options once, before any agent work starts, and returns
// a ready orchestrator. Settings are never re-validated per call.
func New(crew *agents.Crew, opts Options) (*Orchestrator, error) {
	if crew == nil || crew.Designer == nil || crew.Developer == nil || crew.Player == nil || crew.Reviewer == nil {
		return nil, types.NewConfigurationError("crew", "all four pipeline roles must be configured")
	}
	if opts.DeliveryThreshold < 0 || opts.DeliveryThreshold > 100 {
		return nil, types.NewConfigurationError("pipeline.deliveryThreshold", "must be between 0 and 100")
	}
	if opts.MaxIterations < 1 {
		return nil, types.NewConfigurationError("pipeline.maxIterations", "must be at least 1")
	}
	if opts.StageRetries < 0 {
		return nil, types.NewConfigurationError("pipeline.stageRetries", "cannot be negative")
	}
	if opts.CallTimeout <= 0 {
		return nil, types.NewConfigurationError("pipeline.callTimeout", "must be positive")
	}
	return &Orchestrator{crew: crew, opts: opts}, nil
}

// DevelopGame runs the full loop for a fresh game request. The returned
// Result is non-nil for every terminal outcome; the error is non-nil when
// the run ended through a stage failure or cancellation rather than a
// verdict.
func (o *Orchestrator) DevelopGame(ctx context.Context, req *models.UserRequirement) (*Result, error) {
	if req == nil {
		return nil, types.NewConfigurationError("requirement", "a game request is required")
	}
	if err := models.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("invalid game request: %w", err)
	}
	return o.run(ctx, models.NewIterationHistory(req))
}

// Resume re-enters the loop for a stored run with its accumulated feedback,
// at the developer when a design already exists. The remaining iteration
// budget is MaxIterations minus the passes already recorded, with a floor of
// one so a resumed run always gets at least one fresh pass.
func (o *Orchestrator) Resume(ctx context.Context, history *models.IterationHistory) (*Result, error) {
	if history == nil || history.Requirement == nil {
		return nil, fmt.Errorf("cannot resume: history is missing its game request")
	}
	if history.Outcome == string(OutcomeAccepted) {
		return nil, fmt.Errorf("run %s already produced an accepted game; nothing to resume", history.RunID)
	}
	history.Outcome = ""
	return o.run(ctx, history)
}

func (o *Orchestrator) run(ctx context.Context, history *models.IterationHistory) (*Result, error) {
	design := history.LatestDesign()
	artifact := history.LatestArtifact()

	next := StageDesigning
	if design != nil {
		next = StageDeveloping
	}

	remaining := o.opts.MaxIterations - len(history.Snapshots)
	if remaining < 1 {
		remaining = 1
	}
	lastIteration := len(history.Snapshots) + remaining

	for {
		iter := len(history.Snapshots) + 1
		var revCtx *models.IterationContext
		if len(history.Snapshots) > 0 {
			revCtx = history.Context()
		}
		snap := models.IterationSnapshot{Iteration: iter, StartedAt: time.Now().UTC()}

		if next == StageDesigning {
			if ctx.Err() != nil {
				return o.finishCancelled(ctx, history, StageDesigning)
			}
			design2, err := runStage(ctx, o, StageDesigning, agents.RoleDesigner, iter, func(callCtx context.Context) (*models.GameDesignDocument, error) {
				return o.crew.Designer.Design(callCtx, agents.DesignRequest{Requirement: history.Requirement, Context: revCtx})
			})
			if err != nil {
				return o.failStage(history, &snap, design, "the designer could not produce a usable design", err)
			}
			design = design2
			snap.Design = design2
		}

		if ctx.Err() != nil {
			return o.finishCancelled(ctx, history, StageDeveloping)
		}
		built, err := runStage(ctx, o, StageDeveloping, agents.RoleDeveloper, iter, func(callCtx context.Context) (*models.GameArtifact, error) {
			return o.crew.Developer.Develop(callCtx, agents.BuildRequest{Design: design, Previous: artifact, Context: revCtx})
		})
		if err != nil {
			return o.failStage(history, &snap, design, "the developer could not produce a working build", err)
		}
		artifact = built
		snap.Artifact = built

		if ctx.Err() != nil {
			return o.finishCancelled(ctx, history, StageTesting)
		}
		session, err := runStage(ctx, o, StageTesting, agents.RolePlayer, iter, func(callCtx context.Context) (*models.PlaySession, error) {
			return o.crew.Player.Playtest(callCtx, agents.PlayRequest{Design: design, Artifact: artifact})
		})
		if err != nil {
			return o.failStage(history, &snap, design, "playtesting could not be completed", err)
		}
		snap.Session = session

		if ctx.Err() != nil {
			return o.finishCancelled(ctx, history, StageReviewing)
		}
		review, err := runStage(ctx, o, StageReviewing, agents.RoleReviewer, iter, func(callCtx context.Context) (*models.GameReview, error) {
			return o.crew.Reviewer.Review(callCtx, agents.ReviewRequest{
				Requirement: history.Requirement,
				Design:      design,
				Artifact:    artifact,
				Session:     session,
				Context:     revCtx,
			})
		})
		if err != nil {
			return o.failStage(history, &snap, design, "the review could not be completed", err)
		}
		snap.Review = review

		decision := Route(review, o.opts.DeliveryThreshold)
		snap.FinishedAt = time.Now().UTC()

		if decision.Accept {
			snap.Route = string(OutcomeAccepted)
			history.Append(snap)
			history.Outcome = string(OutcomeAccepted)
			o.saveHistory(history)
			return &Result{
				Outcome:    OutcomeAccepted,
				Reason:     decision.Reason,
				Design:     design,
				Artifact:   artifact,
				Review:     review,
				History:    history,
				Iterations: len(history.Snapshots),
			}, nil
		}

		if iter >= lastIteration {
			snap.Route = string(OutcomeAbandoned)
			history.Append(snap)
			reason := fmt.Sprintf("iteration budget of %d exhausted: %s", lastIteration, decision.Reason)
			return o.finishAbandoned(history, design, reason, nil)
		}

		snap.Route = string(decision.Next)
		history.Append(snap)
		o.saveHistory(history)
		next = decision.Next
	}
}

// runStage executes one agent call under the per-call timeout and the retry
// budget. It returns a StageExhaustedError once the budget is spent. A dead
// parent context stops further retries; the call that died on it is reported
// as its generation error.
func runStage[T any](ctx context.Context, o *Orchestrator, stage Stage, role agents.Role, iteration int, call func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := o.opts.StageRetries + 1
	var last *GenerationError
	made := 0

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if last == nil {
				last = &GenerationError{Role: role, Stage: stage, Attempt: attempt, Err: err}
			}
			break
		}
		message := ""
		if attempt > 1 {
			message = fmt.Sprintf("retrying (attempt %d of %d)", attempt, attempts)
		}
		o.emit(ProgressEvent{Stage: stage, Iteration: iteration, Attempt: attempt, Message: message})

		callCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
		out, err := call(callCtx)
		cancel()
		if err == nil {
			return out, nil
		}
		made = attempt
		last = &GenerationError{Role: role, Stage: stage, Attempt: attempt, Err: err}
	}

	return zero, &StageExhaustedError{Stage: stage, Iteration: iteration, Attempts: made, Last: last}
}

// failStage records whatever the failed pass produced, then abandons the run.
// Passes that produced nothing leave no snapshot behind.
func (o *Orchestrator) failStage(history *models.IterationHistory, snap *models.IterationSnapshot, design *models.GameDesignDocument, reason string, err error) (*Result, error) {
	if snap.Design != nil || snap.Artifact != nil {
		snap.FinishedAt = time.Now().UTC()
		history.Append(*snap)
	}
	return o.finishAbandoned(history, design, reason, err)
}

// finishCancelled abandons the run at a stage checkpoint. The pass in flight
// is dropped whole; the last completed pass remains the fallback.
func (o *Orchestrator) finishCancelled(ctx context.Context, history *models.IterationHistory, stage Stage) (*Result, error) {
	name := strings.ToLower(string(stage))
	cause := fmt.Errorf("run cancelled before the %s stage: %w", name, ctx.Err())
	return o.finishAbandoned(history, history.LatestDesign(), fmt.Sprintf("cancelled before the %s stage", name), cause)
}

// finishAbandoned closes out the run with the best-scoring artifact the
// history holds, when it holds one at all.
func (o *Orchestrator) finishAbandoned(history *models.IterationHistory, design *models.GameDesignDocument, reason string, cause error) (*Result, error) {
	history.Outcome = string(OutcomeAbandoned)
	o.saveHistory(history)

	res := &Result{
		Outcome:    OutcomeAbandoned,
		Reason:     reason,
		Design:     design,
		History:    history,
		Iterations: len(history.Snapshots),
	}
	if best := history.BestSnapshot(); best != nil {
		res.Artifact = best.Artifact
		res.Review = best.Review
		if d := history.DesignInEffect(best.Iteration); d != nil {
			res.Design = d
		}
	}
	return res, cause
}

func (o *Orchestrator) saveHistory(history *models.IterationHistory) {
	if o.opts.History == nil {
		return
	}
	if err := o.opts.History.Save(history); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save run history: %v\n", err)
	}
}

func (o *Orchestrator) emit(e ProgressEvent) {
	if o.opts.OnProgress != nil {
		o.opts.OnProgress(e)
	}
}
