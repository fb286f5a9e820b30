package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/gameforge/models"
)

func setupTestStore(t *testing.T) *FileHistoryStore {
	t.Helper()

	store := NewFileHistoryStore()
	config := map[string]string{
		"historyDir":    t.TempDir(),
		"historyFormat": "json",
	}
	if err := store.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	return store
}

func testHistory(t *testing.T) *models.IterationHistory {
	t.Helper()

	history := models.NewIterationHistory(models.NewUserRequirement("A memory card game with animals"))
	history.Append(models.IterationSnapshot{
		Iteration: 1,
		Design: &models.GameDesignDocument{
			Title:     "Animal Match",
			Genre:     "puzzle",
			Concept:   "Flip cards to find matching animal pairs before time runs out.",
			Mechanics: []models.GameMechanic{{Name: "matching", Description: "flip two cards per turn"}},
		},
		Artifact: &models.GameArtifact{
			Files:    []models.CodeFile{{Filename: "index.html", Content: "<html></html>"}},
			MainFile: "index.html",
		},
		Session: &models.PlaySession{
			SessionID: "s-1",
			BugsFound: []string{"timer keeps running after win"},
			FunScore:  60,
		},
		Review: &models.GameReview{OverallScore: 62, Summary: "solid start"},
	})
	return history
}

func TestFileHistoryStore_SaveAndLoad(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	history := testHistory(t)
	if err := store.Save(history); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(history.RunID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.RunID != history.RunID {
		t.Errorf("RunID mismatch: got %q, want %q", loaded.RunID, history.RunID)
	}
	if len(loaded.Snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(loaded.Snapshots))
	}
	if loaded.Snapshots[0].Review.OverallScore != 62 {
		t.Errorf("review score = %d, want 62", loaded.Snapshots[0].Review.OverallScore)
	}
	if len(loaded.AllBugs) != 1 || loaded.AllBugs[0] != "timer keeps running after win" {
		t.Errorf("pending bugs not preserved: %v", loaded.AllBugs)
	}
}

func TestFileHistoryStore_LoadByPrefix(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	history := testHistory(t)
	if err := store.Save(history); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(history.RunID[:8])
	if err != nil {
		t.Fatalf("Load by prefix failed: %v", err)
	}
	if loaded.RunID != history.RunID {
		t.Errorf("RunID mismatch: got %q, want %q", loaded.RunID, history.RunID)
	}

	if _, err := store.Load("no-such-run"); err == nil {
		t.Error("Load of unknown run should fail")
	}
}

func TestFileHistoryStore_ChecksumDetectsTampering(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	history := testHistory(t)
	if err := store.Save(history); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := store.runPath(history.RunID)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}
	tampered := strings.Replace(string(data), "Animal Match", "Tampered Title", 1)
	if err := os.WriteFile(path, []byte(tampered), 0o644); err != nil {
		t.Fatalf("write tampered file: %v", err)
	}

	if _, err := store.Load(history.RunID); err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("expected checksum mismatch error, got %v", err)
	}
}

func TestFileHistoryStore_SaveOverwritesPriorSnapshot(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	history := testHistory(t)
	if err := store.Save(history); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	history.Append(models.IterationSnapshot{
		Iteration: 2,
		Review:    &models.GameReview{OverallScore: 80, Summary: "much better"},
	})
	history.Outcome = "ACCEPTED"
	if err := store.Save(history); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := store.Load(history.RunID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Snapshots) != 2 {
		t.Errorf("expected 2 snapshots after overwrite, got %d", len(loaded.Snapshots))
	}
	if loaded.Outcome != "ACCEPTED" {
		t.Errorf("Outcome = %q, want ACCEPTED", loaded.Outcome)
	}
}

func TestFileHistoryStore_ListAndDelete(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	first := testHistory(t)
	if err := store.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second := models.NewIterationHistory(models.NewUserRequirement("A space shooter with waves"))
	second.UpdatedAt = first.UpdatedAt.Add(time.Minute)
	if err := store.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(summaries))
	}
	// Newest first: second was saved last and has the later UpdatedAt.
	if summaries[0].RunID != second.RunID {
		t.Errorf("expected newest run first, got %q", summaries[0].RunID)
	}

	var firstSummary *RunSummary
	for i := range summaries {
		if summaries[i].RunID == first.RunID {
			firstSummary = &summaries[i]
		}
	}
	if firstSummary == nil {
		t.Fatal("first run missing from listing")
	}
	if firstSummary.Title != "Animal Match" {
		t.Errorf("Title = %q, want %q", firstSummary.Title, "Animal Match")
	}
	if firstSummary.Iterations != 1 || firstSummary.PendingBugs != 1 {
		t.Errorf("summary counts wrong: %+v", firstSummary)
	}

	if err := store.Delete(first.RunID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(first.RunID); err == nil {
		t.Error("Load after Delete should fail")
	}
	if err := store.Delete(first.RunID); err == nil {
		t.Error("Delete of missing run should fail")
	}
}

func TestFileHistoryStore_YAMLFormat(t *testing.T) {
	store := NewFileHistoryStore()
	dir := t.TempDir()
	if err := store.Initialize(map[string]string{"historyDir": dir, "historyFormat": "yaml"}); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer func() { _ = store.Close() }()

	history := testHistory(t)
	if err := store.Save(history); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, history.RunID+".yaml")); err != nil {
		t.Errorf("expected yaml file on disk: %v", err)
	}

	loaded, err := store.Load(history.RunID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Requirement.Description != history.Requirement.Description {
		t.Errorf("requirement not preserved through yaml round-trip")
	}
}

func TestFileHistoryStore_RejectsUnknownFormat(t *testing.T) {
	store := NewFileHistoryStore()
	err := store.Initialize(map[string]string{"historyDir": t.TempDir(), "historyFormat": "xml"})
	if err == nil {
		t.Fatal("expected unsupported format error")
	}
}
