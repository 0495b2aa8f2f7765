package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// WriteText writes r as a bordered plain-text table for the terminal,
// framed by the same title, timestamp and total lines as the CSV export.
func WriteText(w io.Writer, r *Report) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(r.Columns...).
		Rows(r.Rows...)

	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n\n%s\n",
		titleLine(r), generatedLine(r), t.String(), totalLine(r))
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
