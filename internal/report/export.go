package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const (
	generatedLayout = "2006-01-02 15:04:05"
	sheetName       = "Report"
)

func titleLine(r *Report) string     { return "ClassIFY Report: " + r.Title }
func generatedLine(r *Report) string { return "Generated on: " + r.GeneratedAt.Format(generatedLayout) }
func totalLine(r *Report) string     { return fmt.Sprintf("Total records: %d", r.Len()) }

// DefaultFilename suggests a file name for r in the given format, e.g.
// "ClassIFY_Tasks_Today.csv".
func DefaultFilename(r *Report, format string) string {
	return "ClassIFY_" + strings.ReplaceAll(r.Title, " ", "_") + "." + format
}

// WriteCSV writes r as CSV: a title line, the generation time, a blank
// line, the header, one line per record, a blank line and the record count.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	records := [][]string{
		{titleLine(r)},
		{generatedLine(r)},
		nil,
		r.Columns,
	}
	records = append(records, r.Rows...)
	records = append(records, nil, []string{totalLine(r)})

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// WriteXLSX writes r as a single-sheet workbook laid out like WriteCSV,
// with a styled header row.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#8B1A2B"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("creating title style: %w", err)
	}

	set := func(col, row int, v any) error {
		return f.SetCellValue(sheetName, cell(col, row), v)
	}

	if err := set(1, 1, titleLine(r)); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if err := f.SetCellStyle(sheetName, cell(1, 1), cell(1, 1), titleStyle); err != nil {
		return fmt.Errorf("styling title: %w", err)
	}
	if err := set(1, 2, generatedLine(r)); err != nil {
		return fmt.Errorf("writing timestamp: %w", err)
	}

	const headerRow = 4
	for i, c := range r.Columns {
		if err := set(i+1, headerRow, c); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if len(r.Columns) > 0 {
		last := cell(len(r.Columns), headerRow)
		if err := f.SetCellStyle(sheetName, cell(1, headerRow), last, headerStyle); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	row := headerRow + 1
	for _, rec := range r.Rows {
		for i, v := range rec {
			if err := set(i+1, row, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
		row++
	}
	if err := set(1, row+1, totalLine(r)); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	for i := range r.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, columnWidth(r, i)); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

// columnWidth fits column i to its longest value, within sane bounds.
func columnWidth(r *Report, i int) float64 {
	longest := len(r.Columns[i])
	for _, rec := range r.Rows {
		if i < len(rec) && len(rec[i]) > longest {
			longest = len(rec[i])
		}
	}
	return float64(min(max(longest+2, 10), 60))
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// ExportFile writes r to path, choosing the format from the extension.
// Unknown extensions are rejected.
func ExportFile(path string, r *Report) error {
	var write func(io.Writer, *Report) error
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case FormatCSV:
		write = WriteCSV
	case FormatXLSX:
		write = WriteXLSX
	default:
		return fmt.Errorf("exporting %s: unsupported format %q", path, filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, r); err != nil {
		f.Close()
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
