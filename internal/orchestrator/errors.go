/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package orchestrator

import (
	"fmt"

	"github.com/josephgoksu/gameforge/internal/agents"
)

// GenerationError wraps a single failed agent call: a provider error, a
// timeout, or unparsable structured output.
type GenerationError struct {
	Role    agents.Role
	Stage   Stage
	Attempt int
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s call failed on attempt %d: %v", e.Role.Label(), e.Attempt, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StageExhaustedError means a stage ran out of retries. It wraps the last
// GenerationError seen.
type StageExhaustedError struct {
	Stage     Stage
	Iteration int
	Attempts  int
	Last      *GenerationError
}

func (e *StageExhaustedError) Error() string {
	return fmt.Sprintf("%s stage exhausted after %d attempts on iteration %d: %v", e.Stage.Label(), e.Attempts, e.Iteration, e.Last)
}

func (e *StageExhaustedError) Unwrap() error {
	if e.Last == nil {
		return nil
	}
	return e.Last
}
