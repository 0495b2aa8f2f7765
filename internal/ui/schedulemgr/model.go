package schedulemgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/internal/theme"
)

// CloseMsg signals the parent to leave the schedule view.
type CloseMsg struct{}

// ChangedMsg signals that schedule entries were added, edited or deleted.
type ChangedMsg struct{}

type scheduleMode int

const (
	modeList scheduleMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	subjectCode string
	day         model.Weekday
	start       string
	end         string
	room        string
	confirm     bool
}

type scheduleLoadedMsg struct {
	subjects []model.Subject
	entries  []model.ScheduleEntry
	err      error
}

type entrySavedMsg struct{ err error }
type entryDeletedMsg struct{ err error }

// Model is the Bubble Tea model for the weekly class schedule.
type Model struct {
	mode        scheduleMode
	store       store.Store
	keys        *keys.KeyMap
	subjects    []model.Subject
	entries     []model.ScheduleEntry
	day         model.Weekday
	selectedIdx int
	editingID   int64
	isNew       bool
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new schedule manager model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:  modeList,
		store: s,
		keys:  k,
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// Init loads subjects and schedule entries from the store.
func (m Model) Init() tea.Cmd {
	return m.loadSchedule()
}

// Editing reports whether a form has keyboard focus.
func (m Model) Editing() bool {
	return m.mode != modeList
}

// Day returns the weekday the list is filtered by, or "" for the whole week.
func (m Model) Day() model.Weekday {
	return m.day
}

// SetDay filters the list to one weekday and reloads it. An empty day
// shows the whole week.
func (m *Model) SetDay(day model.Weekday) tea.Cmd {
	m.day = day
	m.selectedIdx = 0
	return m.loadSchedule()
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (model.ScheduleEntry, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.entries) {
		return model.ScheduleEntry{}, false
	}
	return m.entries[m.selectedIdx], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case scheduleLoadedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
			return m, nil
		}
		m.subjects = msg.subjects
		m.entries = msg.entries
		if m.selectedIdx >= len(m.entries) {
			m.selectedIdx = max(len(m.entries)-1, 0)
		}
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
		} else {
			m.statusMsg = "Class saved"
		}
		m.mode = modeList
		return m, tea.Batch(m.loadSchedule(), changed)

	case entryDeletedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
		} else {
			m.statusMsg = "Class deleted"
		}
		m.mode = modeList
		return m, tea.Batch(m.loadSchedule(), changed)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func changed() tea.Msg { return ChangedMsg{} }

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.entries) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.entries)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.entries) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.entries) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.day = nextDay(m.day)
		m.selectedIdx = 0
		return m, m.loadSchedule()

	case key.Matches(msg, m.keys.New):
		if len(m.subjects) == 0 {
			m.statusMsg = "Add a subject before scheduling classes"
			return m, nil
		}
		day := m.day
		if day == "" {
			day = model.Monday
		}
		m.isNew = true
		m.editingID = 0
		*m.fb = formBindings{subjectCode: m.subjects[0].Code, day: day}
		m.form = m.buildForm()
		m.mode = modeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		e, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.isNew = false
		m.editingID = e.ID
		*m.fb = formBindings{
			subjectCode: e.SubjectCode,
			day:         e.Day,
			start:       e.StartTime,
			end:         e.EndTime,
			room:        e.Room,
		}
		m.form = m.buildForm()
		m.mode = modeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.Selected(); !ok {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

// nextDay cycles the whole week, then Mon through Sun.
func nextDay(d model.Weekday) model.Weekday {
	if d == "" {
		return model.Weekdays[0]
	}
	i := d.Index() + 1
	if i >= len(model.Weekdays) {
		return ""
	}
	return model.Weekdays[i]
}

func (m Model) buildForm() *huh.Form {
	subjects := make([]huh.Option[string], len(m.subjects))
	for i, s := range m.subjects {
		subjects[i] = huh.NewOption(s.Code+" - "+s.Name, s.Code)
	}
	days := make([]huh.Option[model.Weekday], len(model.Weekdays))
	for i, d := range model.Weekdays {
		days[i] = huh.NewOption(string(d), d)
	}
	clock := func(s string) error {
		_, err := model.ParseClock(s)
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(subjects...).
				Value(&m.fb.subjectCode),
			huh.NewSelect[model.Weekday]().
				Title("Day").
				Options(days...).
				Value(&m.fb.day),
			huh.NewInput().
				Title("Start").
				Placeholder("HH:MM").
				Value(&m.fb.start).
				Validate(clock),
			huh.NewInput().
				Title("End").
				Placeholder("HH:MM").
				Value(&m.fb.end).
				Validate(clock),
			huh.NewInput().
				Title("Room").
				Placeholder("ROOM 105").
				Value(&m.fb.room),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	label := ""
	if e, ok := m.Selected(); ok {
		label = fmt.Sprintf("%s on %s %s", e.SubjectCode, e.Day, e.TimeRange())
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + label + "?").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.saveEntry()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		if e, ok := m.Selected(); ok && m.fb.confirm {
			return m, m.deleteEntry(e.ID)
		}
		m.mode = modeList
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the schedule manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		title := "New Class"
		if !m.isNew {
			title = "Edit Class"
		}
		return m.viewForm(title, m.form)
	case modeConfirmDelete:
		return m.viewForm("Delete Class", m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	heading := "Weekly Schedule"
	if m.day != "" {
		heading += " · " + string(m.day)
	}
	b.WriteString(theme.TitleStyle.Render(heading))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.DimmedStyle.Render("No classes. Press 'n' to add one."))
	}

	dayStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginTop(1)
	var current model.Weekday
	for i, e := range m.entries {
		if e.Day != current {
			current = e.Day
			b.WriteString(dayStyle.Render(string(current)))
			b.WriteString("\n")
		}
		label := fmt.Sprintf("%s  %-8s %s", e.TimeRange(), e.SubjectCode, e.SubjectName)
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		if e.Room != "" {
			b.WriteString(theme.DimmedStyle.Render("  " + e.Room))
		}
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.MessageStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("n new | e edit | d delete | f filter day | esc back"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) viewForm(title string, f *huh.Form) string {
	if f == nil {
		return ""
	}
	content := theme.TitleStyle.MarginBottom(1).Render(title) + "\n" + f.View()
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func (m Model) loadSchedule() tea.Cmd {
	s := m.store
	var filter store.ScheduleFilter
	if m.day != "" {
		day := m.day
		filter.Day = &day
	}
	return func() tea.Msg {
		ctx := context.Background()
		subjects, err := s.ListSubjects(ctx)
		if err != nil {
			return scheduleLoadedMsg{err: err}
		}
		entries, err := s.ListSchedule(ctx, filter)
		return scheduleLoadedMsg{subjects: subjects, entries: entries, err: err}
	}
}

func (m Model) saveEntry() tea.Cmd {
	s := m.store
	fb := *m.fb
	id := m.editingID
	isNew := m.isNew
	return func() tea.Msg {
		entry := model.ScheduleEntry{
			ID:          id,
			SubjectCode: fb.subjectCode,
			Day:         fb.day,
			StartTime:   fb.start,
			EndTime:     fb.end,
			Room:        strings.TrimSpace(fb.room),
		}
		if isNew {
			_, err := s.AddScheduleEntry(context.Background(), entry)
			return entrySavedMsg{err: err}
		}
		return entrySavedMsg{err: s.UpdateScheduleEntry(context.Background(), entry)}
	}
}

func (m Model) deleteEntry(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return entryDeletedMsg{err: s.DeleteScheduleEntry(context.Background(), id)}
	}
}
