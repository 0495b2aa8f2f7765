package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/classify/tests/testutil"
)

func TestDashboard_Today(t *testing.T) {
	m := New(testutil.NewSeededStore(t), testutil.Clock, 140, 50)

	msg, ok := m.Init()().(LoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Len(t, msg.Classes, 2)
	assert.Len(t, msg.Tasks, 2)
	assert.Empty(t, msg.Overdue)
	assert.Len(t, msg.Subjects, 7)

	m, _ = m.Update(msg)
	view := m.View()
	assert.Contains(t, view, "Tuesday, December 9, 2025")
	assert.Contains(t, view, "LAB 02")
	assert.Contains(t, view, "Review for quiz")
	assert.Contains(t, view, "All caught up.")
	assert.Contains(t, view, "Get CISCO NetAcad certification")
}

func TestDashboard_Overdue(t *testing.T) {
	later := func() time.Time { return time.Date(2025, time.December, 13, 8, 0, 0, 0, time.UTC) }
	m := New(testutil.NewSeededStore(t), later, 140, 50)

	msg := m.Init()().(LoadedMsg)
	require.NoError(t, msg.Err)
	assert.Len(t, msg.Overdue, 4)
	assert.Empty(t, msg.Tasks)

	m, _ = m.Update(msg)
	assert.Contains(t, m.View(), "Overdue (4)")
	assert.Contains(t, m.View(), "Nothing due today.")
}

func TestDashboard_LookupDue(t *testing.T) {
	m := New(testutil.NewSeededStore(t), testutil.Clock, 140, 50)
	m, _ = m.Update(m.Init()())

	date := time.Date(2025, time.December, 12, 0, 0, 0, 0, time.UTC)
	msg := m.LookupDue(date)().(DueLoadedMsg)
	require.NoError(t, msg.Err)
	require.Len(t, msg.Tasks, 1)
	assert.Equal(t, "CpE 405", msg.Tasks[0].SubjectCode)

	m, _ = m.Update(msg)
	assert.Contains(t, m.View(), "Due 2025-12-12")

	m, _ = m.Update(m.LookupDue(date.AddDate(1, 0, 0))())
	assert.Contains(t, m.View(), "No tasks due on this date.")
}
