package reports

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/report"
	"github.com/nhle/classify/internal/theme"
	"github.com/nhle/classify/internal/ui"
)

// CloseMsg signals the parent to leave the reports view.
type CloseMsg struct{}

// GeneratedMsg carries a freshly generated report.
type GeneratedMsg struct {
	Report *report.Report
	Err    error
}

// ExportedMsg reports where a report was written.
type ExportedMsg struct {
	Path string
	Err  error
}

// Model browses the canned reports and exports them.
type Model struct {
	svc       *report.Service
	keys      *keys.KeyMap
	exportDir string
	kinds     []report.Kind
	idx       int
	current   *report.Report
	table     table.Model
	statusMsg string
	width     int
	height    int
}

// New creates a reports view. Exports are written into exportDir.
func New(svc *report.Service, k *keys.KeyMap, exportDir string, width, height int) Model {
	t := table.New(table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F8F9FA")).
		Background(theme.ColorAccent).
		Bold(false)
	t.SetStyles(styles)

	m := Model{
		svc:       svc,
		keys:      k,
		exportDir: exportDir,
		kinds:     report.Kinds(),
		table:     t,
	}
	m.SetSize(width, height)
	return m
}

// Init generates the selected report.
func (m Model) Init() tea.Cmd {
	return m.generate()
}

// Kind returns the report currently selected.
func (m Model) Kind() report.Kind {
	return m.kinds[m.idx]
}

// Report returns the last generated report, if any.
func (m Model) Report() *report.Report {
	return m.current
}

// Show selects kind and regenerates it.
func (m *Model) Show(kind report.Kind) tea.Cmd {
	for i, k := range m.kinds {
		if k == kind {
			m.idx = i
		}
	}
	return m.generate()
}

// Export writes the current report in format into the export directory.
func (m Model) Export(format string) tea.Cmd {
	r := m.current
	if r == nil {
		return func() tea.Msg {
			return ExportedMsg{Err: fmt.Errorf("no report to export")}
		}
	}
	path := filepath.Join(m.exportDir, report.DefaultFilename(r, format))
	return func() tea.Msg {
		return ExportedMsg{Path: path, Err: report.ExportFile(path, r)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GeneratedMsg:
		if msg.Err != nil {
			m.statusMsg = model.Describe(msg.Err)
			return m, nil
		}
		if msg.Report.Kind != m.Kind() {
			return m, nil
		}
		m.current = msg.Report
		m.setTable(msg.Report)
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.statusMsg = model.Describe(msg.Err)
		} else {
			m.statusMsg = "Exported to " + msg.Path
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.NextReport):
			m.idx = (m.idx + 1) % len(m.kinds)
			m.statusMsg = ""
			return m, m.generate()
		case key.Matches(msg, m.keys.PrevReport):
			m.idx = (m.idx + len(m.kinds) - 1) % len(m.kinds)
			m.statusMsg = ""
			return m, m.generate()
		case key.Matches(msg, m.keys.ExportCSV):
			return m, m.Export(report.FormatCSV)
		case key.Matches(msg, m.keys.ExportXLSX):
			return m, m.Export(report.FormatXLSX)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// setTable replaces columns and rows. Rows are cleared first so the table
// never renders old rows against new columns.
func (m *Model) setTable(r *report.Report) {
	available := max(m.width-4-2*len(r.Columns), 20)
	widths := columnWidths(r, available)

	cols := make([]table.Column, len(r.Columns))
	for i, c := range r.Columns {
		cols[i] = table.Column{Title: c, Width: widths[i]}
	}
	rows := make([]table.Row, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = table.Row(row)
	}

	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// columnWidths fits each column to its content, shrinking the widest
// columns until the total fits in available.
func columnWidths(r *report.Report, available int) []int {
	widths := make([]int, len(r.Columns))
	for i, c := range r.Columns {
		widths[i] = lipgloss.Width(c)
		for _, row := range r.Rows {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}
	for total(widths) > available {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 6 {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(ws []int) int {
	n := 0
	for _, w := range ws {
		n += w
	}
	return n
}

// View renders the reports browser.
func (m Model) View() string {
	var b strings.Builder

	titles := make([]string, len(m.kinds))
	for i, k := range m.kinds {
		titles[i] = k.Title()
	}
	b.WriteString(ui.RenderTabs(titles, m.idx))
	b.WriteString("\n\n")

	if r := m.current; r != nil && r.Kind == m.Kind() {
		b.WriteString(theme.TitleStyle.Render("ClassIFY Report: " + r.Title))
		b.WriteString(theme.DimmedStyle.Render("  as of " + model.FormatDate(r.Today)))
		b.WriteString("\n\n")
		if r.Len() == 0 {
			b.WriteString(theme.DimmedStyle.Render("No records."))
		} else {
			b.WriteString(m.table.View())
		}
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Total records: %d", r.Len()))
	} else {
		b.WriteString(theme.DimmedStyle.Render("Generating..."))
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.MessageStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("tab/shift+tab switch report | x export csv | X export xlsx | esc back"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(max(width-4, 20))
	m.table.SetHeight(max(height-12, 3))
	if m.current != nil {
		m.setTable(m.current)
	}
}

func (m Model) generate() tea.Cmd {
	svc := m.svc
	kind := m.Kind()
	return func() tea.Msg {
		r, err := svc.Generate(context.Background(), kind)
		return GeneratedMsg{Report: r, Err: err}
	}
}
