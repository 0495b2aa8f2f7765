package reports

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/report"
	"github.com/nhle/classify/tests/testutil"
)

func newModel(t *testing.T, exportDir string) Model {
	t.Helper()
	svc := report.NewService(testutil.NewSeededStore(t), nil, report.WithClock(testutil.Clock))
	return New(svc, keys.DefaultKeyMap(), exportDir, 140, 40)
}

func TestReports_InitialReport(t *testing.T) {
	m := newModel(t, t.TempDir())
	assert.Contains(t, m.View(), "Generating...")

	m, _ = m.Update(m.Init()())
	require.NotNil(t, m.Report())
	assert.Equal(t, report.KindSubjectsWithTasks, m.Report().Kind)

	view := m.View()
	assert.Contains(t, view, "ClassIFY Report: All Subjects with Tasks")
	assert.Contains(t, view, "Total records: 7")
}

func TestReports_TabCycles(t *testing.T) {
	m := newModel(t, t.TempDir())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, report.KindUpcomingTasks, m.Kind())
	m, _ = m.Update(cmd())
	assert.Equal(t, 2, m.Report().Len())

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, report.KindScheduleToday, m.Kind())
	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "Total records: 2")
}

func TestReports_StaleResultIgnored(t *testing.T) {
	m := newModel(t, t.TempDir())
	first := m.Init()()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(first)
	assert.Nil(t, m.Report())
}

func TestReports_Show(t *testing.T) {
	m := newModel(t, t.TempDir())

	cmd := m.Show(report.KindMissingTasks)
	assert.Equal(t, report.KindMissingTasks, m.Kind())
	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "No records.")
	assert.Contains(t, m.View(), "Total records: 0")
}

func TestReports_Export(t *testing.T) {
	dir := t.TempDir()
	m := newModel(t, dir)

	msg := m.Export(report.FormatCSV)().(ExportedMsg)
	assert.Error(t, msg.Err)

	m, _ = m.Update(m.Init()())
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	msg = cmd().(ExportedMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, filepath.Join(dir, "ClassIFY_All_Subjects_with_Tasks.csv"), msg.Path)
	assert.FileExists(t, msg.Path)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	msg = cmd().(ExportedMsg)
	require.NoError(t, msg.Err)
	assert.FileExists(t, filepath.Join(dir, "ClassIFY_All_Subjects_with_Tasks.xlsx"))

	m, _ = m.Update(msg)
	assert.Contains(t, m.View(), "Exported to")
}

func TestColumnWidths(t *testing.T) {
	r := &report.Report{
		Columns: []string{"A", "Long"},
		Rows:    [][]string{{"abcdefghijklmnopqrstuvwxyz", "x"}},
	}
	assert.Equal(t, []int{26, 4}, columnWidths(r, 100))

	shrunk := columnWidths(r, 20)
	assert.Equal(t, 20, total(shrunk))
	assert.Equal(t, 4, shrunk[1])
}
