package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for the designer
	ColorBlue      = lipgloss.Color("75")  // Blue for the developer
	ColorSelected  = lipgloss.Color("42")  // Green checkmarks in selects

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Input Box Style for textarea border
	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Outcome styles for the end-of-run panel
	StyleOutcomeAccepted  = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleOutcomeAbandoned = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	// Select list styles
	StyleSelectTitle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectActive = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSelectNormal = lipgloss.NewStyle().Foreground(ColorText)
	StyleSelectDim    = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// stageColors maps pipeline stage names to their accent colors.
var stageColors = map[string]lipgloss.Color{
	"DESIGNING":  ColorCyan,
	"DEVELOPING": ColorBlue,
	"TESTING":    ColorWarning,
	"REVIEWING":  ColorPrimary,
}

// StageColor returns the accent color for a pipeline stage name.
func StageColor(stage string) lipgloss.Color {
	if c, ok := stageColors[stage]; ok {
		return c
	}
	return ColorSecondary
}

// StageStyle returns a bold style in the stage's accent color.
func StageStyle(stage string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StageColor(stage)).Bold(true)
}

// ScoreStyle colors a review score green at or above the threshold,
// orange within ten points below it, red otherwise.
func ScoreStyle(score, threshold int) lipgloss.Style {
	switch {
	case score >= threshold:
		return StyleSuccess
	case score >= threshold-10:
		return StyleWarning
	default:
		return StyleError
	}
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
