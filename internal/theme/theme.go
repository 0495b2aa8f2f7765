package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	// ColorAccent is the accent color; Use replaces it.
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#C8344A", Light: "#8B1A2B"}
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Accent colors selectable through Use.
var accents = map[string]lipgloss.AdaptiveColor{
	"default": {Dark: "#C8344A", Light: "#8B1A2B"},
	"blue":    {Dark: "#5B9BD5", Light: "#2B6CB0"},
	"green":   {Dark: "#6BCB77", Light: "#2F855A"},
	"mono":    {Dark: "#868E96", Light: "#4A5568"},
}

// Styles built from the active accent color by Use.
var (
	// HeaderStyle is used for the application title bar.
	HeaderStyle lipgloss.Style
	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle lipgloss.Style
	// PanelStyle wraps a bordered content panel such as a dashboard card.
	PanelStyle lipgloss.Style
	// DetailPanelStyle wraps full-height overlays like help and the command palette.
	DetailPanelStyle lipgloss.Style
	// TitleStyle renders the heading of a view or panel.
	TitleStyle lipgloss.Style
	// ListItemStyle is the base style for items in a list.
	ListItemStyle lipgloss.Style
	// SelectedItemStyle highlights the currently focused list item.
	SelectedItemStyle lipgloss.Style
	// HelpStyle is used for keyboard shortcut hints and help text.
	HelpStyle lipgloss.Style
	// DimmedStyle renders secondary text and empty-state messages.
	DimmedStyle lipgloss.Style
	// MessageStyle renders transient status messages under a list.
	MessageStyle lipgloss.Style
	// OverdueStyle flags tasks whose deadline has passed.
	OverdueStyle lipgloss.Style
)

func init() {
	build()
}

// Use switches the accent color to the named theme. An empty name selects
// the default theme.
func Use(name string) error {
	if name == "" {
		name = "default"
	}
	accent, ok := accents[name]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	ColorAccent = accent
	build()
	return nil
}

func build() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F8F9FA")).
		Background(ColorAccent).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	DetailPanelStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(ColorAccent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorAccent)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	DimmedStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	MessageStyle = lipgloss.NewStyle().
		Foreground(ColorYellow).
		Italic(true)

	OverdueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorRed)
}

// StatusStyle returns a color-coded style for the given task status.
func StatusStyle(status model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.StatusNotStarted:
		return base.Foreground(ColorBlue)
	case model.StatusInProgress:
		return base.Foreground(ColorYellow)
	case model.StatusCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for the given task priority.
func PriorityStyle(priority model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorOrange)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}
