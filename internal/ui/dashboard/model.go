package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/internal/theme"
	"github.com/nhle/classify/internal/ui/taskmgr"
)

// LoadedMsg carries everything the dashboard shows for one day.
type LoadedMsg struct {
	Today    time.Time
	Classes  []model.ScheduleEntry
	Tasks    []model.Task
	Overdue  []model.Task
	Subjects []model.Subject
	Err      error
}

// DueLoadedMsg carries the result of a due-date lookup.
type DueLoadedMsg struct {
	Date  time.Time
	Tasks []model.Task
	Err   error
}

// Model is the landing view: today's classes and to-dos, overdue work,
// subject goals and an optional due-date lookup.
type Model struct {
	store  store.Store
	now    func() time.Time
	data   LoadedMsg
	due    *DueLoadedMsg
	width  int
	height int
}

// New creates a dashboard model. now decides what "today" is.
func New(s store.Store, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	return Model{store: s, now: now, width: width, height: height}
}

// Init loads today's data.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// LookupDue lists tasks due on date below today's panels.
func (m Model) LookupDue(date time.Time) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		tasks, err := s.TasksDueOn(context.Background(), date)
		return DueLoadedMsg{Date: model.DateOf(date), Tasks: tasks, Err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.data = msg
	case DueLoadedMsg:
		m.due = &msg
	}
	return m, nil
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the dashboard.
func (m Model) View() string {
	if m.data.Err != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			theme.OverdueStyle.Render(model.Describe(m.data.Err)))
	}

	today := m.data.Today
	cardWidth := max((m.width-6)/2, 30)

	heading := theme.TitleStyle.Render(fmt.Sprintf("%s, %s",
		today.Weekday(), today.Format("January 2, 2006")))

	classes := m.card("Today's Classes", m.renderClasses(), cardWidth)
	tasks := m.card("Today's To-Do", m.renderTasks(m.data.Tasks, "Nothing due today."), cardWidth)
	overdue := m.card(fmt.Sprintf("Overdue (%d)", len(m.data.Overdue)),
		m.renderTasks(m.data.Overdue, "All caught up."), cardWidth)
	goals := m.card("Goals", m.renderGoals(), cardWidth)

	rows := []string{
		heading,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, classes, " ", tasks),
		lipgloss.JoinHorizontal(lipgloss.Top, overdue, " ", goals),
	}
	if m.due != nil {
		title := "Due " + model.FormatDate(m.due.Date)
		body := m.renderTasks(m.due.Tasks, "No tasks due on this date.")
		if m.due.Err != nil {
			body = theme.OverdueStyle.Render(model.Describe(m.due.Err))
		}
		rows = append(rows, m.card(title, body, cardWidth*2+1))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) card(title, body string, width int) string {
	return theme.PanelStyle.Width(width).Render(
		theme.TitleStyle.Render(title) + "\n" + body)
}

func (m Model) renderClasses() string {
	if len(m.data.Classes) == 0 {
		return theme.DimmedStyle.Render("No classes today.")
	}
	var b strings.Builder
	for _, e := range m.data.Classes {
		fmt.Fprintf(&b, "%s  %s", e.TimeRange(), lipgloss.NewStyle().Bold(true).Render(e.SubjectCode))
		if e.Room != "" {
			b.WriteString(theme.DimmedStyle.Render("  " + e.Room))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderTasks(tasks []model.Task, empty string) string {
	if len(tasks) == 0 {
		return theme.DimmedStyle.Render(empty)
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = taskmgr.RenderTask(t, m.data.Today, false)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderGoals() string {
	var b strings.Builder
	for _, s := range m.data.Subjects {
		if s.Goals == "" {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(s.Code))
		b.WriteString("  " + s.Goals + "\n")
	}
	if b.Len() == 0 {
		return theme.DimmedStyle.Render("No goals set. Edit a subject to add one.")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) load() tea.Cmd {
	s := m.store
	today := model.DateOf(m.now())
	day := model.WeekdayOf(today)
	return func() tea.Msg {
		ctx := context.Background()
		msg := LoadedMsg{Today: today}
		if msg.Classes, msg.Err = s.ListSchedule(ctx, store.ScheduleFilter{Day: &day}); msg.Err != nil {
			return msg
		}
		if msg.Tasks, msg.Err = s.TasksDueOn(ctx, today); msg.Err != nil {
			return msg
		}
		if msg.Overdue, msg.Err = s.TasksOverdue(ctx, today); msg.Err != nil {
			return msg
		}
		msg.Subjects, msg.Err = s.ListSubjects(ctx)
		return msg
	}
}
