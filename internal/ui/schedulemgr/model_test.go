package schedulemgr

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/tests/testutil"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := New(testutil.NewSeededStore(t), keys.DefaultKeyMap(), 120, 60)
	m, _ = m.Update(m.Init()())
	return m
}

func TestNextDay(t *testing.T) {
	var d model.Weekday
	var seen []model.Weekday
	for range 8 {
		d = nextDay(d)
		seen = append(seen, d)
	}
	assert.Equal(t, append(append([]model.Weekday{}, model.Weekdays...), ""), seen)
}

func TestModel_WeekGroupedByDay(t *testing.T) {
	m := loaded(t)

	require.Len(t, m.entries, 11)
	assert.Equal(t, model.Monday, m.entries[0].Day)
	assert.Equal(t, model.Saturday, m.entries[10].Day)

	view := m.View()
	assert.Contains(t, view, "Weekly Schedule")
	assert.Contains(t, view, "07:00 - 10:00")
	assert.Contains(t, view, "ROOM 103")
}

func TestModel_DayFilter(t *testing.T) {
	m := loaded(t)

	m, cmd := m.Update(runes("f"))
	assert.Equal(t, model.Monday, m.Day())
	m, _ = m.Update(cmd())
	assert.Len(t, m.entries, 2)

	m, cmd = m.Update(runes("f"))
	m, _ = m.Update(cmd())
	assert.Equal(t, model.Tuesday, m.Day())
	require.Len(t, m.entries, 2)
	assert.Equal(t, "CS 211", m.entries[0].SubjectCode)
	assert.Contains(t, m.View(), "Weekly Schedule · Tue")
}

func TestModel_SetDay(t *testing.T) {
	m := loaded(t)

	cmd := m.SetDay(model.Thursday)
	m, _ = m.Update(cmd())
	require.Len(t, m.entries, 3)
	assert.Equal(t, "07:00", m.entries[0].StartTime)
	assert.Equal(t, "CS 212", m.entries[1].SubjectCode)

	m, _ = m.Update(m.SetDay("")())
	assert.Equal(t, model.Weekday(""), m.Day())
	assert.Len(t, m.entries, 11)
}

func TestSaveEntry(t *testing.T) {
	m := loaded(t)

	m.isNew = true
	*m.fb = formBindings{subjectCode: "GEd 109", day: model.Sunday, start: "8:00", end: "9:30", room: " HALL "}
	m, _ = m.Update(m.saveEntry()())
	assert.Equal(t, "Class saved", m.statusMsg)

	m, _ = m.Update(m.loadSchedule()())
	last := m.entries[len(m.entries)-1]
	assert.Equal(t, model.Sunday, last.Day)
	assert.Equal(t, "08:00", last.StartTime)
	assert.Equal(t, "HALL", last.Room)

	m.fb.end = "07:00"
	m, _ = m.Update(m.saveEntry()())
	assert.Contains(t, m.statusMsg, "Invalid input")
}

func TestDeleteEntry(t *testing.T) {
	m := loaded(t)

	m, _ = m.Update(runes("d"))
	assert.True(t, m.Editing())
	assert.Contains(t, m.View(), "Phy 101 on Mon 10:00 - 13:00")

	e, ok := m.Selected()
	require.True(t, ok)
	m, _ = m.Update(m.deleteEntry(e.ID)())
	assert.Equal(t, "Class deleted", m.statusMsg)
	assert.False(t, m.Editing())
	m, _ = m.Update(m.loadSchedule()())
	assert.Len(t, m.entries, 10)
}
