package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tuesday = time.Date(2025, time.December, 9, 10, 30, 0, 0, time.UTC)

func TestLayout_ContentSize(t *testing.T) {
	l := NewLayout(100, 40)
	assert.Equal(t, 100, l.ContentWidth())
	assert.Equal(t, 37, l.ContentHeight())

	assert.Equal(t, 0, NewLayout(80, 2).ContentHeight())
}

func TestDateLabel(t *testing.T) {
	assert.Equal(t, "Tue 2025-12-09", DateLabel(tuesday))
	assert.Equal(t, "Sun 2025-12-14", DateLabel(tuesday.AddDate(0, 0, 5)))
}

func TestLayout_HeaderFillsWidth(t *testing.T) {
	l := NewLayout(60, 20)
	header := l.Header(tuesday, []string{"1 Dashboard", "2 Subjects"}, 0)

	lines := strings.Split(header, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 60, lipgloss.Width(lines[0]))
	assert.Contains(t, lines[0], AppTitle)
	assert.Contains(t, lines[0], "Tue 2025-12-09")
	assert.Contains(t, lines[1], "2 Subjects")
}

func TestLayout_StatusBarStaysOneRow(t *testing.T) {
	l := NewLayout(40, 20)

	short := l.StatusBar("q quit")
	assert.Equal(t, 40, lipgloss.Width(short))

	long := l.StatusBar(strings.Repeat("far too many hints ", 10))
	assert.Equal(t, 0, strings.Count(long, "\n"))
	assert.Equal(t, 40, lipgloss.Width(long))
}

func TestLayout_FramePinsStatusBar(t *testing.T) {
	l := NewLayout(50, 12)
	out := l.Frame(l.Header(tuesday, nil, 0), "one line", l.StatusBar("q quit"))

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, lines[len(lines)-1], "q quit")
}

func TestRenderTabs(t *testing.T) {
	out := RenderTabs([]string{"1 Dashboard", "2 Subjects"}, 1)
	assert.Contains(t, out, "1 Dashboard")
	assert.Contains(t, out, "2 Subjects")
	assert.Equal(t, 0, strings.Count(out, "\n"))
}
