package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/gameforge/internal/config"
	"github.com/josephgoksu/gameforge/internal/llm"
)

type ProviderOption struct {
	ID          string
	Name        string
	Description string
	HasAPIKey   bool
}

var providerMeta = map[string]struct {
	name  string
	blurb string
}{
	llm.ProviderOpenAI:    {"OpenAI", "GPT models"},
	llm.ProviderAnthropic: {"Anthropic", "Claude models"},
	llm.ProviderGemini:    {"Gemini", "Google models"},
	llm.ProviderOllama:    {"Ollama", "Local, private, free"},
}

// buildProviderOptions lists the supported providers with their key status.
func buildProviderOptions() []ProviderOption {
	providers := llm.SupportedProviders()
	options := make([]ProviderOption, 0, len(providers))

	for _, id := range providers {
		meta := providerMeta[id]
		hasKey := id == llm.ProviderOllama || config.ResolveAPIKey(llm.Provider(id)) != ""

		desc := meta.blurb
		if !hasKey {
			desc += " • key not set"
		}

		options = append(options, ProviderOption{
			ID:          id,
			Name:        meta.name,
			Description: desc,
			HasAPIKey:   hasKey,
		})
	}

	return options
}

// PromptProvider prompts the user to select an LLM provider.
func PromptProvider() (string, error) {
	m := providerSelectModel{
		options: buildProviderOptions(),
		cursor:  0,
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running provider selection: %w", err)
	}

	result := finalModel.(providerSelectModel)
	if result.quit {
		return "", fmt.Errorf("provider selection cancelled")
	}

	return result.selectedID, nil
}

type providerSelectModel struct {
	options    []ProviderOption
	cursor     int
	selectedID string
	quit       bool
}

func (m providerSelectModel) Init() tea.Cmd {
	return nil
}

func (m providerSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.selectedID = m.options[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m providerSelectModel) View() string {
	s := "\n" + StyleSelectTitle.Render("🤖 Select AI Provider") + "\n\n"

	for i, opt := range m.options {
		cursor := "  "
		style := StyleSelectNormal

		if m.cursor == i {
			cursor = "▶ "
			style = StyleSelectActive
		}

		line := fmt.Sprintf("%s%s", cursor, style.Render(fmt.Sprintf("%-10s", opt.Name)))
		line += StyleSelectDim.Render(" " + opt.Description)
		s += line + "\n"
	}

	s += "\n" + StyleSelectDim.Render("↑/↓ navigate • enter select • esc cancel") + "\n"
	return s
}
