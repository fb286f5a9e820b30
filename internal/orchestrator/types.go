/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com

Package orchestrator runs the iterative game development loop: Designer,
Developer, Player, and Reviewer in sequence, looping on the review verdict
until the game is accepted or the iteration budget runs out.
*/
package orchestrator

import (
	"time"

	"github.com/josephgoksu/gameforge/models"
)

// Stage identifies where a pass is in the pipeline.
type Stage string

const (
	StageDesigning  Stage = "DESIGNING"
	StageDeveloping Stage = "DEVELOPING"
	StageTesting    Stage = "TESTING"
	StageReviewing  Stage = "REVIEWING"
)

// Label returns the display name for a stage.
func (s Stage) Label() string {
	switch s {
	case StageDesigning:
		return "Designing"
	case StageDeveloping:
		return "Developing"
	case StageTesting:
		return "Playtesting"
	case StageReviewing:
		return "Reviewing"
	default:
		return string(s)
	}
}

// Outcome is the terminal state of a run.
type Outcome string

const (
	OutcomeAccepted  Outcome = "ACCEPTED"
	OutcomeAbandoned Outcome = "ABANDONED"
)

// Default loop settings.
const (
	DefaultDeliveryThreshold = 75
	DefaultMaxIterations     = 10
	DefaultStageRetries      = 2
	DefaultCallTimeout       = 120 * time.Second
)

// HistorySink receives the run history after every completed pass so an
// interrupted run can be resumed. store.FileHistoryStore satisfies it.
type HistorySink interface {
	Save(history *models.IterationHistory) error
}

// ProgressEvent describes one agent call as it starts.
type ProgressEvent struct {
	Stage     Stage
	Iteration int
	// Attempt is 1 on the first try of a stage, higher on retries.
	Attempt int
	Message string
}

// Options holds configuration for the development loop.
type Options struct {
	// DeliveryThreshold is the minimum review score for delivery.
	DeliveryThreshold int

	// MaxIterations caps the number of passes, full and shortcut alike.
	MaxIterations int

	// StageRetries is how many times a failed agent call is retried
	// before the stage counts as exhausted.
	StageRetries int

	// CallTimeout bounds a single agent call.
	CallTimeout time.Duration

	// History, when set, is saved after every pass. Leave nil to keep
	// runs in memory only.
	History HistorySink

	// OnProgress is called as agent calls start and retry.
	OnProgress func(e ProgressEvent)
}

// DefaultOptions returns the standard loop settings.
func DefaultOptions() Options {
	return Options{
		DeliveryThreshold: DefaultDeliveryThreshold,
		MaxIterations:     DefaultMaxIterations,
		StageRetries:      DefaultStageRetries,
		CallTimeout:       DefaultCallTimeout,
	}
}

// Result is what a run produced. On abandonment the artifact fields carry
// the best-scoring earlier pass when one exists, and may be nil when the run
// failed before any artifact was built.
type Result struct {
	Outcome    Outcome
	Reason     string
	Design     *models.GameDesignDocument
	Artifact   *models.GameArtifact
	Review     *models.GameReview
	History    *models.IterationHistory
	Iterations int
}
