package store

import (
	"time"

	"github.com/josephgoksu/gameforge/models"
)

// HistoryStore defines the interface for development run persistence.
// It outlines the contract for saving, loading, and listing iteration
// histories so interrupted runs can be resumed.
type HistoryStore interface {
	// Initialize configures the store with necessary parameters, such as
	// the history directory and data format.
	// It should be called before any other store operations.
	Initialize(config map[string]string) error

	// Save persists a run history. It overwrites any previous snapshot of
	// the same run, so calling it after every iteration is safe.
	Save(history *models.IterationHistory) error

	// Load retrieves a run history by its run ID. Short ID prefixes are
	// accepted when unambiguous.
	Load(runID string) (*models.IterationHistory, error)

	// List returns summaries of all stored runs, newest first.
	List() ([]RunSummary, error)

	// Delete removes a run history and its checksum from the store.
	Delete(runID string) error

	// Close releases any resources held by the store, such as file locks.
	Close() error
}

// RunSummary is the lightweight listing view of a stored run.
type RunSummary struct {
	RunID       string    `json:"runId"`
	Title       string    `json:"title"`
	Request     string    `json:"request"`
	Outcome     string    `json:"outcome"`
	Iterations  int       `json:"iterations"`
	PendingBugs int       `json:"pendingBugs"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
