package telemetry

import "time"

// Event names for the pipeline lifecycle.
const (
	EventRunStarted  = "run_started"
	EventRunResumed  = "run_resumed"
	EventRunFinished = "run_finished"
)

// Run outcomes as reported with EventRunFinished. "failed" covers runs that
// errored before reaching a terminal pipeline state.
const (
	OutcomeAccepted  = "accepted"
	OutcomeAbandoned = "abandoned"
	OutcomeCanceled  = "canceled"
	OutcomeFailed    = "failed"
)

// ScoreBucket maps a review score to a coarse range so the exact number
// never leaves the machine. Negative scores mean no review happened.
func ScoreBucket(score int) string {
	switch {
	case score < 0:
		return "none"
	case score < 25:
		return "0-24"
	case score < 50:
		return "25-49"
	case score < 75:
		return "50-74"
	case score < 90:
		return "75-89"
	default:
		return "90-100"
	}
}

// TrackRunStarted records the start of a fresh pipeline run. The mode is
// the command that launched it ("create" or "demo").
func TrackRunStarted(c Client, mode, provider, model string) {
	if c == nil {
		return
	}
	c.Track(EventRunStarted, Properties{
		"mode":     mode,
		"provider": provider,
		"model":    model,
	})
}

// TrackRunResumed records that a checkpointed run was picked back up.
func TrackRunResumed(c Client, provider, model string) {
	if c == nil {
		return
	}
	c.Track(EventRunResumed, Properties{
		"provider": provider,
		"model":    model,
	})
}

// TrackRunFinished records the end of a pipeline run. Only aggregate shape
// is reported: outcome, pass count, score bucket and wall time.
func TrackRunFinished(c Client, outcome string, iterations, score int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Track(EventRunFinished, Properties{
		"outcome":      outcome,
		"iterations":   iterations,
		"score_bucket": ScoreBucket(score),
		"duration_ms":  elapsed.Milliseconds(),
	})
}
