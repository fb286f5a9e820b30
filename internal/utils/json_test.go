package utils

import (
	"strings"
	"testing"
)

type designPayload struct {
	Title      string   `json:"title"`
	Genre      string   `json:"genre"`
	Difficulty string   `json:"difficulty"`
	WinConds   []string `json:"winConditions"`
}

type filePayload struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type artifactPayload struct {
	Files    []filePayload `json:"files"`
	MainFile string        `json:"mainFile"`
}

func TestExtractAndParseJSON_CleanAndFenced(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "plain JSON",
			input:     `{"title": "Snake", "genre": "arcade"}`,
			wantTitle: "Snake",
		},
		{
			name:      "json fence",
			input:     "```json\n{\"title\": \"Snake\", \"genre\": \"arcade\"}\n```",
			wantTitle: "Snake",
		},
		{
			name:      "bare fence",
			input:     "```\n{\"title\": \"Pong\"}\n```",
			wantTitle: "Pong",
		},
		{
			name:      "leading prose",
			input:     "Here is the design document you asked for:\n{\"title\": \"Breakout\"}",
			wantTitle: "Breakout",
		},
		{
			name:      "trailing prose",
			input:     "{\"title\": \"Tetris\"}\nLet me know if you want changes.",
			wantTitle: "Tetris",
		},
		{
			name:    "no JSON at all",
			input:   "I could not produce a design this time.",
			wantErr: true,
		},
		{
			name:    "empty response",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAndParseJSON[designPayload](tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractAndParseJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestExtractAndParseJSON_Repairs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, got designPayload)
	}{
		{
			name:  "trailing comma",
			input: `{"title": "Snake", "genre": "arcade",}`,
			check: func(t *testing.T, got designPayload) {
				if got.Genre != "arcade" {
					t.Errorf("Genre = %q", got.Genre)
				}
			},
		},
		{
			name:  "single quoted key and value",
			input: `{'title': 'Snake', "genre": "arcade"}`,
			check: func(t *testing.T, got designPayload) {
				if got.Title != "Snake" {
					t.Errorf("Title = %q", got.Title)
				}
			},
		},
		{
			name:  "bare enum value",
			input: `{"title": "Snake", "difficulty": normal}`,
			check: func(t *testing.T, got designPayload) {
				if got.Difficulty != "normal" {
					t.Errorf("Difficulty = %q", got.Difficulty)
				}
			},
		},
		{
			name:  "missing comma between fields",
			input: "{\"title\": \"Snake\"\n\"genre\": \"arcade\"}",
			check: func(t *testing.T, got designPayload) {
				if got.Title != "Snake" || got.Genre != "arcade" {
					t.Errorf("got %+v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAndParseJSON[designPayload](tt.input)
			if err != nil {
				t.Fatalf("ExtractAndParseJSON() error = %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestExtractAndParseJSON_CodeContent(t *testing.T) {
	// Literal newline and tab inside the content string, as models emit
	// when they inline game code.
	input := "{\"files\": [{\"filename\": \"game.js\", \"content\": \"const x = 1;\nif (x) {\t}\"}], \"mainFile\": \"game.js\"}"

	got, err := ExtractAndParseJSON[artifactPayload](input)
	if err != nil {
		t.Fatalf("ExtractAndParseJSON() error = %v", err)
	}
	if len(got.Files) != 1 || got.Files[0].Filename != "game.js" {
		t.Fatalf("Files = %+v", got.Files)
	}
	if !strings.Contains(got.Files[0].Content, "const x = 1;") {
		t.Errorf("Content = %q", got.Files[0].Content)
	}
}

func TestExtractAndParseJSON_Truncated(t *testing.T) {
	// Output cut off mid-array: the balanced-close pass should still give
	// us the decodable prefix.
	input := `{"title": "Snake", "winConditions": ["Reach 50 points", "Survive`

	got, err := ExtractAndParseJSON[designPayload](input)
	if err != nil {
		t.Fatalf("ExtractAndParseJSON() error = %v", err)
	}
	if got.Title != "Snake" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.WinConds) != 2 {
		t.Errorf("WinConditions = %v", got.WinConds)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"a longer description of a game", 12, "a longer ..."},
		{"", 5, ""},
		{"abc", 2, "ab"},
		// Rune-counted, so multibyte characters are never split.
		{"héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		if got := Truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}
