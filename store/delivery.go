package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/josephgoksu/gameforge/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DeliveryWriter writes finished games to the output directory, one
// subdirectory per game, named after the game's title.
type DeliveryWriter struct {
	outputDir string
}

// NewDeliveryWriter creates a writer rooted at outputDir ("./games" when
// empty).
func NewDeliveryWriter(outputDir string) *DeliveryWriter {
	if outputDir == "" {
		outputDir = filepath.Join(".", "games")
	}
	return &DeliveryWriter{outputDir: outputDir}
}

// Deliver writes every artifact file plus a generated README.md and, when a
// review exists, a REVIEW.md into a fresh directory. It returns the
// directory path. Name collisions get a -2, -3, ... suffix.
func (w *DeliveryWriter) Deliver(design *models.GameDesignDocument, artifact *models.GameArtifact, review *models.GameReview) (string, error) {
	if design == nil || artifact == nil {
		return "", fmt.Errorf("delivery requires a design and an artifact")
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir %s: %w", w.outputDir, err)
	}

	dir, err := w.uniqueDir(slugify(design.Title))
	if err != nil {
		return "", err
	}

	for _, file := range artifact.Files {
		rel, err := safeRelPath(file.Filename)
		if err != nil {
			return "", err
		}
		dest := filepath.Join(dir, rel)
		if parent := filepath.Dir(dest); parent != dir {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return "", fmt.Errorf("failed to create delivery subdir %s: %w", parent, err)
			}
		}
		if err := os.WriteFile(dest, []byte(file.Content), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", dest, err)
		}
	}

	readme := renderReadme(design, artifact)
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o644); err != nil {
		return "", fmt.Errorf("failed to write README.md: %w", err)
	}
	if review != nil {
		if err := os.WriteFile(filepath.Join(dir, "REVIEW.md"), []byte(renderReview(review)), 0o644); err != nil {
			return "", fmt.Errorf("failed to write REVIEW.md: %w", err)
		}
	}
	return dir, nil
}

// uniqueDir creates and returns the first free directory for slug.
// os.Mkdir rather than MkdirAll so an existing directory surfaces as
// ErrExist and we move on to the next suffix.
func (w *DeliveryWriter) uniqueDir(slug string) (string, error) {
	for i := 1; ; i++ {
		name := slug
		if i > 1 {
			name = fmt.Sprintf("%s-%d", slug, i)
		}
		dir := filepath.Join(w.outputDir, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create delivery dir %s: %w", dir, err)
		}
	}
}

func slugify(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))
	// replace non-alphanumeric with hyphens
	re := regexp.MustCompile(`[^a-z0-9]+`)
	s := re.ReplaceAllString(lower, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "game"
	}
	if len(s) > 64 { // keep file paths readable
		truncated := s[:64]
		lastDash := strings.LastIndex(truncated, "-")
		if lastDash > 40 {
			s = truncated[:lastDash]
		} else {
			s = truncated
		}
		s = strings.Trim(s, "-")
	}
	return s
}

// safeRelPath rejects artifact filenames that would escape the delivery
// directory. Generated filenames are model output and cannot be trusted.
func safeRelPath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("artifact file has an empty filename")
	}
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact filename %q escapes the delivery directory", name)
	}
	return cleaned, nil
}

func renderReadme(design *models.GameDesignDocument, artifact *models.GameArtifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", design.Title)
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(design.Concept))
	fmt.Fprintf(&b, "- **Genre**: %s\n", titleCaser.String(design.Genre))
	if design.Difficulty != "" {
		fmt.Fprintf(&b, "- **Difficulty**: %s\n", titleCaser.String(string(design.Difficulty)))
	}
	b.WriteString("\n## How to Play\n\n")
	for _, win := range design.WinConditions {
		fmt.Fprintf(&b, "- Win: %s\n", win)
	}
	for _, lose := range design.LoseConditions {
		fmt.Fprintf(&b, "- Lose: %s\n", lose)
	}
	if len(design.Controls) > 0 {
		b.WriteString("\n### Controls\n\n| Input | Action |\n| --- | --- |\n")
		keys := make([]string, 0, len(design.Controls))
		for k := range design.Controls {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %s |\n", k, design.Controls[k])
		}
	}
	b.WriteString("\n## Running the Game\n\n")
	entry := artifact.MainFile
	if entry == "" {
		entry = "index.html"
	}
	fmt.Fprintf(&b, "Open `%s` in a modern browser. No build step or server required.\n", entry)
	return b.String()
}

func renderReview(review *models.GameReview) string {
	var b strings.Builder
	b.WriteString("# Review\n\n")
	fmt.Fprintf(&b, "Final score: **%d/100**\n", review.OverallScore)
	if len(review.Strengths) > 0 {
		b.WriteString("\n## Strengths\n\n")
		for _, s := range review.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(review.Weaknesses) > 0 {
		b.WriteString("\n## Weaknesses\n\n")
		for _, wk := range review.Weaknesses {
			fmt.Fprintf(&b, "- %s\n", wk)
		}
	}
	if len(review.MustFix) > 0 || len(review.ShouldFix) > 0 {
		b.WriteString("\n## Remaining Issues\n\n")
		for _, issue := range review.MustFix {
			fmt.Fprintf(&b, "- **must fix** (%s): %s\n", issue.Category, issue.Description)
		}
		for _, issue := range review.ShouldFix {
			fmt.Fprintf(&b, "- should fix (%s): %s\n", issue.Category, issue.Description)
		}
	}
	if strings.TrimSpace(review.Summary) != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(review.Summary))
	}
	return b.String()
}
