package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/josephgoksu/gameforge/internal/utils"
	"github.com/josephgoksu/gameforge/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultHistoryDir = ".gameforge/runs"
	historyDirKey     = "historyDir"
	historyFormatKey  = "historyFormat"
	defaultFormat     = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
	lockFileName      = ".lock"
)

// FileHistoryStore implements the HistoryStore interface with one file per
// run. It supports JSON, YAML, and TOML formats and uses file-level locking
// so concurrent gameforge processes cannot corrupt each other's runs.
type FileHistoryStore struct {
	baseDir string
	format  string
	flk     *flock.Flock
}

// NewFileHistoryStore creates a new instance of FileHistoryStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileHistoryStore() *FileHistoryStore {
	return &FileHistoryStore{}
}

// Initialize configures the FileHistoryStore.
// It expects a 'historyDir' key in the config map specifying the run
// directory, defaulting to '.gameforge/runs', and an optional
// 'historyFormat' key (json, yaml, or toml).
func (s *FileHistoryStore) Initialize(config map[string]string) error {
	base, ok := config[historyDirKey]
	if !ok || base == "" {
		base = defaultHistoryDir
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return fmt.Errorf("failed to create history dir %s: %w", base, err)
	}
	s.baseDir = base

	if val, ok := config[historyFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported historyFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultFormat
	}

	s.flk = flock.New(filepath.Join(base, lockFileName))
	return nil
}

// Close releases the store's file lock.
func (s *FileHistoryStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

func (s *FileHistoryStore) runPath(runID string) string {
	return filepath.Join(s.baseDir, runID+"."+s.format)
}

func (s *FileHistoryStore) lock(op string) (func(), error) {
	if s.flk == nil {
		return nil, fmt.Errorf("history store is not initialized")
	}
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("could not lock history store for %s: %w", op, err)
	}
	return func() {
		if unlockErr := s.flk.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to unlock history store: %v\n", unlockErr)
		}
	}, nil
}

// Save persists the history to <historyDir>/<runID>.<format>, writing the
// data and its checksum to temp files first and renaming both into place.
func (s *FileHistoryStore) Save(history *models.IterationHistory) error {
	if history == nil || history.RunID == "" {
		return fmt.Errorf("cannot save a history without a run ID")
	}
	unlock, err := s.lock("save")
	if err != nil {
		return err
	}
	defer unlock()

	data, err := s.marshal(history)
	if err != nil {
		return err
	}

	filePath := s.runPath(history.RunID)
	tempFilePath := filePath + ".tmp"
	checksumFilePath := filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary history file %s: %w", tempFilePath, err)
	}
	if err := os.WriteFile(tempChecksumFilePath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	// Atomically move data file and then checksum file
	if err := os.Rename(tempFilePath, filePath); err != nil {
		return fmt.Errorf("failed to rename temporary history file %s to %s: %w", tempFilePath, filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("CRITICAL: history file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", filePath, checksumFilePath, err)
	}
	return nil
}

// Load retrieves a run by ID, verifying the checksum sidecar when present.
// A unique run ID prefix is accepted in place of the full ID.
func (s *FileHistoryStore) Load(runID string) (*models.IterationHistory, error) {
	unlock, err := s.lock("load")
	if err != nil {
		return nil, err
	}
	defer unlock()

	filePath, err := s.resolveRunPath(runID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to read history file %s: %w", filePath, err)
	}

	// Verify checksum if the sidecar exists. Histories written by hand (or
	// by older versions) load without one; the next save creates it.
	checksumFilePath := filePath + checksumSuffix
	if _, statErr := os.Stat(checksumFilePath); statErr == nil {
		expectedBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expected := strings.TrimSpace(string(expectedBytes))
		if actual := calculateChecksum(data); actual != expected {
			return nil, fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", filePath, expected, actual)
		}
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, statErr)
	}

	var history models.IterationHistory
	if err := s.unmarshal(data, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// List returns a summary per stored run, newest first.
func (s *FileHistoryStore) List() ([]RunSummary, error) {
	unlock, err := s.lock("list")
	if err != nil {
		return nil, err
	}
	defer unlock()

	ids, err := s.runIDs()
	if err != nil {
		return nil, err
	}

	summaries := make([]RunSummary, 0, len(ids))
	for _, id := range ids {
		data, err := os.ReadFile(s.runPath(id))
		if err != nil {
			continue
		}
		var history models.IterationHistory
		if err := s.unmarshal(data, &history); err != nil {
			continue
		}
		summaries = append(summaries, summarizeRun(&history))
	}
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt) })
	return summaries, nil
}

// Delete removes a run's history file and checksum.
func (s *FileHistoryStore) Delete(runID string) error {
	unlock, err := s.lock("delete")
	if err != nil {
		return err
	}
	defer unlock()

	filePath, err := s.resolveRunPath(runID)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("run not found: %s", runID)
		}
		return fmt.Errorf("failed to delete history file %s: %w", filePath, err)
	}
	_ = os.Remove(filePath + checksumSuffix)
	return nil
}

// resolveRunPath maps a run ID, or a unique prefix of one, to its file path.
// The caller must hold the lock.
func (s *FileHistoryStore) resolveRunPath(runID string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run ID is required")
	}
	exact := s.runPath(runID)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	ids, err := s.runIDs()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, runID) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("run not found: %s", runID)
	case 1:
		return s.runPath(matches[0]), nil
	default:
		return "", fmt.Errorf("run ID prefix %q is ambiguous (%d matches)", runID, len(matches))
	}
}

// runIDs lists the IDs of stored runs from the directory contents.
func (s *FileHistoryStore) runIDs() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history dir %s: %w", s.baseDir, err)
	}
	suffix := "." + s.format
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, suffix))
	}
	return ids, nil
}

func summarizeRun(history *models.IterationHistory) RunSummary {
	summary := RunSummary{
		RunID:       history.RunID,
		Outcome:     history.Outcome,
		Iterations:  len(history.Snapshots),
		PendingBugs: len(history.AllBugs),
		UpdatedAt:   history.UpdatedAt,
	}
	if design := history.BaselineDesign(); design != nil {
		summary.Title = design.Title
	}
	if history.Requirement != nil {
		summary.Request = utils.Truncate(strings.TrimSpace(history.Requirement.Description), 140)
	}
	return summary
}

func (s *FileHistoryStore) marshal(history *models.IterationHistory) ([]byte, error) {
	switch s.format {
	case formatJSON:
		data, err := json.MarshalIndent(history, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history to JSON: %w", err)
		}
		return data, nil
	case formatYAML:
		data, err := yaml.Marshal(history)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history to YAML: %w", err)
		}
		return data, nil
	case formatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(history); err != nil {
			return nil, fmt.Errorf("failed to marshal history to TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
}

func (s *FileHistoryStore) unmarshal(data []byte, history *models.IterationHistory) error {
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, history); err != nil {
			return fmt.Errorf("failed to unmarshal JSON history (checksum may have passed): %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, history); err != nil {
			return fmt.Errorf("failed to unmarshal YAML history (checksum may have passed): %w", err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, history); err != nil {
			return fmt.Errorf("failed to unmarshal TOML history (checksum may have passed): %w", err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}
	return nil
}
