package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/spellbound"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateEdit modelState = iota
	stateResults
)

type interactiveModel struct {
	err      error
	checker  *spellbound.Checker
	ignored  []string
	found    []spellbound.SpellingError
	input    textinput.Model
	selected int
	state    modelState
}

type checkedMsg struct {
	err   error
	found []spellbound.SpellingError
}

type ignoredMsg struct {
	err  error
	word string
}

func newInteractiveModel(checker *spellbound.Checker, text string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type text to check"
	ti.Prompt = "> "
	ti.Width = 60
	ti.SetValue(text)
	ti.Focus()

	return &interactiveModel{
		checker: checker,
		input:   ti,
		state:   stateEdit,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	if m.input.Value() == "" {
		return textinput.Blink
	}
	return m.check
}

func (m *interactiveModel) check() tea.Msg {
	found, err := m.checker.Check(m.input.Value()).Collect()
	return checkedMsg{found: found, err: err}
}

func (m *interactiveModel) ignore(word string) tea.Cmd {
	return func() tea.Msg {
		return ignoredMsg{word: word, err: m.checker.Ignore(word)}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateResults {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateResults && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateResults && m.selected < len(m.found)-1 {
				m.selected++
				return m, nil
			}

		case "i":
			if m.state == stateResults && len(m.found) > 0 {
				return m, m.ignore(m.found[m.selected].Text())
			}

		case "e", "esc":
			if m.state == stateResults {
				m.state = stateEdit
				m.input.Focus()
				return m, textinput.Blink
			}

		case "enter":
			if m.state == stateEdit {
				m.input.Blur()
				return m, m.check
			}
		}

	case checkedMsg:
		m.err = msg.err
		m.found = msg.found
		m.selected = min(m.selected, max(len(m.found)-1, 0))
		m.state = stateResults
		m.input.Blur()
		return m, nil

	case ignoredMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ignored = append(m.ignored, msg.word)
		return m, m.check
	}

	if m.state == stateEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Spellbound"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%s/%s", m.checker.Backend(), m.checker.Language()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state {
	case stateEdit:
		b.WriteString(helpStyle.Render("enter check • ctrl+c quit"))

	case stateResults:
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		case len(m.found) == 0:
			b.WriteString(okStyle.Render("No misspellings."))
		default:
			for i, e := range m.found {
				offset := offsetStyle.Render(fmt.Sprintf("@%d", e.Offset()))
				if i == m.selected {
					b.WriteString(selectedStyle.Render("> " + e.Text()))
				} else {
					b.WriteString("  " + wordStyle.Render(e.Text()))
				}
				b.WriteString(" " + offset + "\n")
			}
		}
		if len(m.ignored) > 0 {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("ignored: " + strings.Join(m.ignored, ", ")))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/↓ select • i ignore • e edit • q quit"))
	}

	return b.String()
}

func runInteractive(checker *spellbound.Checker, text string) error {
	p := tea.NewProgram(newInteractiveModel(checker, text), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
