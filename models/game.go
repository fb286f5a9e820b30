package models

import "fmt"

// GameGenre names the broad genres the Designer can work in. The design
// document keeps genre as free text; these are the values offered during
// interactive creation.
type GameGenre string

const (
	GenreArcade     GameGenre = "arcade"
	GenrePuzzle     GameGenre = "puzzle"
	GenrePlatformer GameGenre = "platformer"
	GenreShooter    GameGenre = "shooter"
	GenreCard       GameGenre = "card"
	GenreRacing     GameGenre = "racing"
	GenreStrategy   GameGenre = "strategy"
)

// AllGenres returns the genres in display order.
func AllGenres() []GameGenre {
	return []GameGenre{GenreArcade, GenrePuzzle, GenrePlatformer, GenreShooter, GenreCard, GenreRacing, GenreStrategy}
}

// PlatformHTML5 is the only delivery target right now: a self-contained
// HTML/JS/CSS bundle that runs in any browser.
const PlatformHTML5 = "html5"

// Difficulty represents the intended challenge level of a game.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// NormalizeDifficulty maps loose model output ("medium", "Easy", empty) onto
// the canonical difficulty values.
func NormalizeDifficulty(s string) Difficulty {
	switch Difficulty(normalizeToken(s)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	case DifficultyNormal, Difficulty("medium"), Difficulty(""):
		return DifficultyNormal
	default:
		return DifficultyNormal
	}
}

// UserRequirement is the user's game request, normalized for the pipeline.
type UserRequirement struct {
	Description    string   `json:"description" validate:"required,min=8"`
	Genre          string   `json:"genre,omitempty"`
	Platform       string   `json:"platform" validate:"required,oneof=html5"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	Constraints    []string `json:"constraints,omitempty"`
}

// NewUserRequirement builds a requirement for the default platform.
func NewUserRequirement(description string) *UserRequirement {
	return &UserRequirement{
		Description: description,
		Platform:    PlatformHTML5,
	}
}

// GameMechanic is one mechanic in a design document.
type GameMechanic struct {
	Name                string `json:"name" validate:"required"`
	Description         string `json:"description" validate:"required"`
	ImplementationNotes string `json:"implementationNotes,omitempty"`
}

// GameDesignDocument is the Designer's output: everything the Developer
// needs to build the game without going back to the user.
type GameDesignDocument struct {
	Title          string            `json:"title" validate:"required,min=2,max=120"`
	Genre          string            `json:"genre" validate:"required"`
	Concept        string            `json:"concept" validate:"required,min=10"`
	Mechanics      []GameMechanic    `json:"mechanics" validate:"required,min=1,dive"`
	Controls       map[string]string `json:"controls,omitempty"`
	WinConditions  []string          `json:"winConditions,omitempty"`
	LoseConditions []string          `json:"loseConditions,omitempty"`
	Difficulty     Difficulty        `json:"difficulty,omitempty" validate:"omitempty,oneof=easy normal hard"`
}

// CodeFile is one file of a generated game.
type CodeFile struct {
	Filename string `json:"filename" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Purpose  string `json:"purpose,omitempty"`
}

// GameArtifact is the Developer's output: the complete set of files that
// make up a playable game, plus which file is the entry document.
type GameArtifact struct {
	Files    []CodeFile `json:"files" validate:"required,min=1,dive"`
	MainFile string     `json:"mainFile" validate:"required"`
}

// EntryFile returns the file named by MainFile.
func (a *GameArtifact) EntryFile() (*CodeFile, bool) {
	for i := range a.Files {
		if a.Files[i].Filename == a.MainFile {
			return &a.Files[i], true
		}
	}
	return nil, false
}

// TotalBytes is the combined content size across all files.
func (a *GameArtifact) TotalBytes() int {
	n := 0
	for i := range a.Files {
		n += len(a.Files[i].Content)
	}
	return n
}

// Validate checks struct tags plus the cross-field rule that MainFile must
// name one of Files.
func (a *GameArtifact) Validate() error {
	if err := ValidateStruct(a); err != nil {
		return err
	}
	if _, ok := a.EntryFile(); !ok {
		return fmt.Errorf("mainFile %q does not match any generated file", a.MainFile)
	}
	return nil
}
