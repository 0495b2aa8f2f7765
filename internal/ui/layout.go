package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/theme"
)

// AppTitle is shown at the left of the title bar.
const AppTitle = "ClassIFY"

// Screen rows taken by the frame: the title bar and view tabs above the
// content, the status bar below it.
const (
	headerRows    = 2
	statusBarRows = 1
)

// Layout holds the terminal size and splits it between the frame and the
// active view.
type Layout struct {
	Width  int
	Height int
}

// NewLayout returns a Layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the width handed to views.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the rows left for the active view.
func (l Layout) ContentHeight() int {
	return max(l.Height-headerRows-statusBarRows, 0)
}

// DateLabel formats today the way the title bar shows it, e.g. "Tue 2025-12-09".
func DateLabel(today time.Time) string {
	return fmt.Sprintf("%s %s", model.WeekdayOf(today), model.FormatDate(today))
}

// Header renders the title bar, with today's date on the right, above a
// row of view tabs with active highlighted.
func (l Layout) Header(today time.Time, tabs []string, active int) string {
	return l.bar(theme.HeaderStyle, AppTitle, DateLabel(today)) + "\n" + RenderTabs(tabs, active)
}

// StatusBar renders the bottom bar. Hints longer than the terminal are cut
// to one row.
func (l Layout) StatusBar(hints string) string {
	return l.bar(theme.StatusBarStyle, hints, "")
}

// bar renders a single full-width row in style, with left and right text
// pushed to either edge.
func (l Layout) bar(style lipgloss.Style, left, right string) string {
	inner := l.Width - style.GetHorizontalPadding()
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left
	if right != "" {
		line += strings.Repeat(" ", gap) + right
	}
	return style.Width(l.Width).MaxHeight(1).Render(line)
}

// Frame stacks header, content and status bar. Short content is padded so
// the status bar stays on the last row.
func (l Layout) Frame(header, content, statusBar string) string {
	body := lipgloss.NewStyle().Height(l.ContentHeight()).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

// RenderTabs renders one label per view, highlighting the active one.
func RenderTabs(labels []string, active int) string {
	tabs := make([]string, len(labels))
	for i, label := range labels {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.ColorGray)
		if i == active {
			style = style.Bold(true).Foreground(theme.ColorAccent).Underline(true)
		}
		tabs[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
