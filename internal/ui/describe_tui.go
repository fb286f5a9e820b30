package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptGameDescription opens a multiline editor for the game description.
// Returns the trimmed text, or an empty string when the user cancels.
func PromptGameDescription(placeholder string) (string, error) {
	ti := textarea.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 0 // Unlimited
	ti.SetWidth(72)
	ti.SetHeight(5)
	ti.ShowLineNumbers = false

	m := describeModel{input: ti}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running description prompt: %w", err)
	}

	result := finalModel.(describeModel)
	if result.quit {
		return "", nil
	}
	return strings.TrimSpace(result.value), nil
}

type describeModel struct {
	input textarea.Model
	value string
	quit  bool
}

func (m describeModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m describeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlS, tea.KeyCtrlD:
			m.value = m.input.Value()
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m describeModel) View() string {
	s := "\n" + StyleSelectTitle.Render("🕹  Describe the game you want") + "\n"
	s += StyleSelectDim.Render("A sentence or two is enough. The crew fills in the rest.") + "\n\n"
	s += m.input.View() + "\n\n"
	s += StyleSelectDim.Render("Ctrl+S to start • Enter for a new line • Esc to cancel") + "\n"
	return s
}
