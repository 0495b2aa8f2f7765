package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Views
	Dashboard key.Binding
	Subjects  key.Binding
	Tasks     key.Binding
	Schedule  key.Binding
	Reports   key.Binding

	// Record actions
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Filter key.Binding

	// Reports
	NextReport key.Binding
	PrevReport key.Binding
	ExportCSV  key.Binding
	ExportXLSX key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Subjects: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "subjects"),
		),
		Tasks: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "tasks"),
		),
		Schedule: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "schedule"),
		),
		Reports: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "reports"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		NextReport: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next report"),
		),
		PrevReport: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous report"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export csv"),
		),
		ExportXLSX: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "export xlsx"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Back,
		k.Quit, k.Help, k.Command,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Back, k.Quit},
		{k.Command, k.Help, k.Refresh},
		{k.Dashboard, k.Subjects, k.Tasks, k.Schedule, k.Reports},
		{k.New, k.Edit, k.Delete, k.Filter},
		{k.NextReport, k.PrevReport, k.ExportCSV, k.ExportXLSX},
	}
}
