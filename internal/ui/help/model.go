package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/theme"
)

// commands documents the command palette, in the order shown.
var commands = [][2]string{
	{"home", "open the dashboard"},
	{"subjects | tasks | schedule | reports", "switch view"},
	{"tasks <code>", "show one subject's tasks"},
	{"schedule <day> | schedule all", "show one day's classes, or the whole week"},
	{"report <name>", "open a report (subjects, upcoming, today, completed, missing, schedule)"},
	{"due YYYY-MM-DD", "list tasks due on a date"},
	{"export csv | export xlsx", "export the current report"},
	{"refresh", "reload every view"},
	{"theme <name>", "switch accent (default, blue, green, mono) and save it"},
	{"quit", "exit"},
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	title := theme.TitleStyle.MarginBottom(1).Render("Keyboard Shortcuts")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		helpText,
		"",
		theme.TitleStyle.MarginBottom(1).Render("Commands"),
		renderCommands(),
	)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

func renderCommands() string {
	width := 0
	for _, c := range commands {
		width = max(width, lipgloss.Width(c[0]))
	}
	name := lipgloss.NewStyle().Bold(true).Width(width + 2)

	var b strings.Builder
	for _, c := range commands {
		b.WriteString(name.Render(":" + c[0]))
		b.WriteString(theme.HelpStyle.Render(c[1]))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
