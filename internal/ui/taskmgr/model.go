package taskmgr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/internal/theme"
)

// CloseMsg signals the parent to leave the task view.
type CloseMsg struct{}

// ChangedMsg signals that tasks were added, edited or deleted.
type ChangedMsg struct{}

type taskMode int

const (
	modeList taskMode = iota
	modeForm
	modeConfirmDelete
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	subjectCode string
	name        string
	deadline    string
	priority    model.Priority
	status      model.Status
	confirm     bool
}

type tasksLoadedMsg struct {
	subjects []model.Subject
	tasks    []model.Task
	err      error
}

type taskSavedMsg struct{ err error }
type taskDeletedMsg struct{ err error }

// Model is the Bubble Tea model for task management.
type Model struct {
	mode        taskMode
	store       store.Store
	keys        *keys.KeyMap
	now         func() time.Time
	subjects    []model.Subject
	tasks       []model.Task
	filter      string
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

// New creates a new task manager model. now decides which tasks are shown
// as overdue.
func New(s store.Store, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		mode:  modeList,
		store: s,
		keys:  k,
		now:   now,
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// Init loads subjects and tasks from the store.
func (m Model) Init() tea.Cmd {
	return m.loadTasks()
}

// Editing reports whether a form has keyboard focus.
func (m Model) Editing() bool {
	return m.mode != modeList
}

// Filter returns the subject code tasks are filtered by, or "" for all.
func (m Model) Filter() string {
	return m.filter
}

// SetFilter restricts the list to one subject; "" shows every task.
func (m *Model) SetFilter(code string) tea.Cmd {
	m.filter = code
	m.selectedIdx = 0
	return m.loadTasks()
}

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.selectedIdx], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
			return m, nil
		}
		m.subjects = msg.subjects
		m.tasks = msg.tasks
		if m.selectedIdx >= len(m.tasks) {
			m.selectedIdx = max(len(m.tasks)-1, 0)
		}
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
		} else {
			m.statusMsg = "Task saved"
		}
		m.mode = modeList
		return m, tea.Batch(m.loadTasks(), changed)

	case taskDeletedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
		} else {
			m.statusMsg = "Task deleted"
		}
		m.mode = modeList
		return m, tea.Batch(m.loadTasks(), changed)

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
		if len(m.tasks) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.tasks)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.tasks) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.tasks) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		cmd := m.SetFilter(m.nextFilter())
		return m, cmd

	case key.Matches(msg, m.keys.New):
		if len(m.subjects) == 0 {
			m.statusMsg = "Add a subject before adding tasks"
			return m, nil
		}
		code := m.filter
		if code == "" {
			code = m.subjects[0].Code
		}
		m.isNew = true
		m.editingID = 0
		*m.fb = formBindings{
			subjectCode: code,
			deadline:    model.FormatDate(m.now()),
			priority:    model.PriorityMedium,
			status:      model.StatusNotStarted,
		}
		m.form = m.buildForm()
		m.mode = modeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.isNew = false
		m.editingID = t.ID
		*m.fb = formBindings{
			subjectCode: t.SubjectCode,
			name:        t.Name,
			deadline:    t.DeadlineString(),
			priority:    t.Priority,
			status:      t.Status,
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

// nextFilter cycles all subjects, then each subject code in order.
func (m Model) nextFilter() string {
	if len(m.subjects) == 0 {
		return ""
	}
	if m.filter == "" {
		return m.subjects[0].Code
	}
	for i, s := range m.subjects {
		if s.Code == m.filter && i+1 < len(m.subjects) {
			return m.subjects[i+1].Code
		}
	}
	return ""
}

func (m Model) buildForm() *huh.Form {
	subjects := make([]huh.Option[string], len(m.subjects))
	for i, s := range m.subjects {
		subjects[i] = huh.NewOption(s.Code+" - "+s.Name, s.Code)
	}
	priorities := make([]huh.Option[model.Priority], len(model.Priorities))
	for i, p := range model.Priorities {
		priorities[i] = huh.NewOption(string(p), p)
	}
	statuses := make([]huh.Option[model.Status], len(model.Statuses))
	for i, s := range model.Statuses {
		statuses[i] = huh.NewOption(string(s), s)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(subjects...).
				Value(&m.fb.subjectCode),
			huh.NewInput().
				Title("Task").
				Placeholder("What needs to be done?").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.deadline).
				Validate(func(s string) error {
					_, err := model.ParseDate(s)
					return err
				}),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&m.fb.priority),
			huh.NewSelect[model.Status]().
				Title("Status").
				Options(statuses...).
				Value(&m.fb.status),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if t, ok := m.Selected(); ok {
		name = t.Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete task %q?", name)).
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
		return m, m.saveTask()
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
		if t, ok := m.Selected(); ok && m.fb.confirm {
			return m, m.deleteTask(t.ID)
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

// View renders the task manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		title := "New Task"
		if !m.isNew {
			title = "Edit Task"
		}
		return m.viewForm(title, m.form)
	case modeConfirmDelete:
		return m.viewForm("Delete Task", m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	heading := fmt.Sprintf("Tasks (%d)", len(m.tasks))
	if m.filter != "" {
		heading += " · " + m.filter
	}
	b.WriteString(theme.TitleStyle.Render(heading))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(theme.DimmedStyle.Render("No tasks. Press 'n' to add one."))
	} else {
		today := model.DateOf(m.now())
		for i, t := range m.tasks {
			b.WriteString(RenderTask(t, today, i == m.selectedIdx))
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.MessageStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("n new | e edit | d delete | f filter subject | esc back"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// RenderTask renders one task line: deadline, priority, name, subject and
// status. Overdue tasks are flagged and completed ones dimmed.
func RenderTask(t model.Task, today time.Time, selected bool) string {
	name := t.Name
	switch {
	case selected:
		name = theme.SelectedItemStyle.Render(name)
	case t.IsCompleted():
		name = theme.ListItemStyle.Inherit(theme.DimmedStyle).Strikethrough(true).Render(name)
	default:
		name = theme.ListItemStyle.Render(name)
	}

	deadline := t.DeadlineString()
	if t.IsOverdue(today) {
		deadline = theme.OverdueStyle.Render(deadline + " !")
	}

	priority := theme.PriorityStyle(t.Priority).Width(7).Render(string(t.Priority))
	status := theme.StatusStyle(t.Status).Render(string(t.Status))
	subject := theme.DimmedStyle.Render(t.SubjectCode)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		name, "  ", subject, "  ", priority, " ", deadline, "  ", status)
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

func (m Model) loadTasks() tea.Cmd {
	s := m.store
	var filter store.TaskFilter
	if m.filter != "" {
		code := m.filter
		filter.SubjectCode = &code
	}
	return func() tea.Msg {
		ctx := context.Background()
		subjects, err := s.ListSubjects(ctx)
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		tasks, err := s.ListTasks(ctx, filter)
		return tasksLoadedMsg{subjects: subjects, tasks: tasks, err: err}
	}
}

func (m Model) saveTask() tea.Cmd {
	s := m.store
	fb := *m.fb
	id := m.editingID
	isNew := m.isNew
	return func() tea.Msg {
		deadline, err := model.ParseDate(fb.deadline)
		if err != nil {
			return taskSavedMsg{err: err}
		}
		task := model.Task{
			ID:          id,
			SubjectCode: fb.subjectCode,
			Name:        strings.TrimSpace(fb.name),
			Deadline:    deadline,
			Priority:    fb.priority,
			Status:      fb.status,
		}
		if isNew {
			_, err := s.AddTask(context.Background(), task)
			return taskSavedMsg{err: err}
		}
		return taskSavedMsg{err: s.UpdateTask(context.Background(), task)}
	}
}

func (m Model) deleteTask(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return taskDeletedMsg{err: s.DeleteTask(context.Background(), id)}
	}
}
