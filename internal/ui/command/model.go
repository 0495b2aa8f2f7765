package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Suggestions are offered for tab completion in the palette.
var Suggestions = []string{
	"home",
	"subjects",
	"tasks",
	"schedule",
	"reports",
	"report subjects",
	"report upcoming",
	"report today",
	"report completed",
	"report missing",
	"report schedule",
	"due ",
	"export csv",
	"export xlsx",
	"refresh",
	"theme ",
	"quit",
}

// Model is the command palette view.
type Model struct {
	input   textinput.Model
	history []string
	cursor  int
	width   int
	height  int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "subjects, tasks, report today, due 2025-12-09, export csv..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Suggestions)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette. Up and down walk the
// history of executed commands.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd == "" {
				return m, nil
			}
			if n := len(m.history); n == 0 || m.history[n-1] != cmd {
				m.history = append(m.history, cmd)
			}
			m.cursor = len(m.history)
			return m, func() tea.Msg {
				return CommandMsg(cmd)
			}

		case "up":
			if m.cursor > 0 {
				m.cursor--
				m.input.SetValue(m.history[m.cursor])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.cursor < len(m.history)-1 {
				m.cursor++
				m.input.SetValue(m.history[m.cursor])
				m.input.CursorEnd()
			} else {
				m.cursor = len(m.history)
				m.input.Reset()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := theme.TitleStyle.MarginBottom(1).Render("Command Palette")
	hint := theme.HelpStyle.Render("tab complete | ↑/↓ history | enter run | esc close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View(), "", hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	m.cursor = len(m.history)
	return m.input.Focus()
}

// Reset clears any partially typed command.
func (m *Model) Reset() {
	m.input.Reset()
}
