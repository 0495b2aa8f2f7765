package subjectmgr

import (
	"context"
	"fmt"
	"strconv"
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

// CloseMsg signals the parent to leave the subject view.
type CloseMsg struct{}

// ChangedMsg signals that subjects were added, edited or deleted. Tasks and
// schedule entries may have changed with them.
type ChangedMsg struct{}

type subjectMode int

const (
	modeList subjectMode = iota
	modeForm
	modeConfirmDelete
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	code       string
	name       string
	instructor string
	units      string
	goals      string
	confirm    bool
}

type subjectsLoadedMsg struct {
	subjects []model.Subject
	err      error
}

type subjectSavedMsg struct{ err error }
type subjectDeletedMsg struct{ err error }

// Model is the Bubble Tea model for subject management.
type Model struct {
	mode        subjectMode
	store       store.Store
	keys        *keys.KeyMap
	subjects    []model.Subject
	selectedIdx int
	editingCode string
	isNew       bool
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new subject manager model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:  modeList,
		store: s,
		keys:  k,
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// Init loads subjects from the store.
func (m Model) Init() tea.Cmd {
	return m.loadSubjects()
}

// Editing reports whether a form has keyboard focus.
func (m Model) Editing() bool {
	return m.mode != modeList
}

// Selected returns the subject under the cursor.
func (m Model) Selected() (model.Subject, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.subjects) {
		return model.Subject{}, false
	}
	return m.subjects[m.selectedIdx], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case subjectsLoadedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
			return m, nil
		}
		m.subjects = msg.subjects
		if m.selectedIdx >= len(m.subjects) {
			m.selectedIdx = max(len(m.subjects)-1, 0)
		}
		return m, nil

	case subjectSavedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
		} else {
			m.statusMsg = "Subject saved"
		}
		m.mode = modeList
		return m, tea.Batch(m.loadSubjects(), changed)

	case subjectDeletedMsg:
		if msg.err != nil {
			m.statusMsg = model.Describe(msg.err)
		} else {
			m.statusMsg = "Subject deleted"
		}
		m.mode = modeList
		return m, tea.Batch(m.loadSubjects(), changed)

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
		if len(m.subjects) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.subjects)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.subjects) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.subjects) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.isNew = true
		m.editingCode = ""
		*m.fb = formBindings{units: "3"}
		m.form = m.buildForm()
		m.mode = modeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		s, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.isNew = false
		m.editingCode = s.Code
		*m.fb = formBindings{
			code:       s.Code,
			name:       s.Name,
			instructor: s.Instructor,
			units:      strconv.Itoa(s.Units),
			goals:      s.Goals,
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

func (m Model) buildForm() *huh.Form {
	codeDescription := ""
	if !m.isNew {
		codeDescription = "Renaming moves its tasks and schedule along."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Code").
				Description(codeDescription).
				Placeholder("CS 211").
				Value(&m.fb.code).
				Validate(required("code")),
			huh.NewInput().
				Title("Name").
				Placeholder("Object-Oriented Programming").
				Value(&m.fb.name).
				Validate(required("name")),
			huh.NewInput().
				Title("Instructor").
				Value(&m.fb.instructor),
			huh.NewInput().
				Title("Units").
				Placeholder("3").
				Value(&m.fb.units).
				Validate(func(s string) error {
					_, err := model.ParseUnits(s)
					return err
				}),
			huh.NewInput().
				Title("Goals").
				Description(fmt.Sprintf("Up to %d characters.", model.GoalsMaxLength)).
				CharLimit(model.GoalsMaxLength).
				Value(&m.fb.goals),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	code := ""
	if s, ok := m.Selected(); ok {
		code = s.Code
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete subject %q?", code)).
				Description("All of its tasks and schedule entries will be deleted too.").
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
		return m, m.saveSubject()
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
		if s, ok := m.Selected(); ok && m.fb.confirm {
			return m, m.deleteSubject(s.Code)
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

// View renders the subject manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		title := "New Subject"
		if !m.isNew {
			title = "Edit " + m.editingCode
		}
		return m.viewForm(title, m.form)
	case modeConfirmDelete:
		return m.viewForm("Delete Subject", m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Subjects (%d)", len(m.subjects))))
	b.WriteString("\n\n")

	if len(m.subjects) == 0 {
		b.WriteString(theme.DimmedStyle.Render("No subjects yet. Press 'n' to add one."))
	} else {
		codeWidth := 0
		for _, s := range m.subjects {
			codeWidth = max(codeWidth, lipgloss.Width(s.Code))
		}
		for i, s := range m.subjects {
			label := fmt.Sprintf("%-*s  %s", codeWidth, s.Code, s.Name)
			meta := fmt.Sprintf("  %d units", s.Units)
			if s.Instructor != "" {
				meta += " · " + s.Instructor
			}

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString(theme.DimmedStyle.Render(meta))
			b.WriteString("\n")
		}

		if s, ok := m.Selected(); ok && s.Goals != "" {
			b.WriteString("\n")
			b.WriteString(theme.PanelStyle.Width(min(m.width-4, 80)).Render("Goals: " + s.Goals))
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.MessageStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("n new | e edit | d delete | esc back"))

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

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func (m Model) loadSubjects() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		subjects, err := s.ListSubjects(context.Background())
		return subjectsLoadedMsg{subjects: subjects, err: err}
	}
}

func (m Model) saveSubject() tea.Cmd {
	s := m.store
	fb := *m.fb
	oldCode := m.editingCode
	isNew := m.isNew
	return func() tea.Msg {
		units, err := model.ParseUnits(fb.units)
		if err != nil {
			return subjectSavedMsg{err: err}
		}
		subject := model.Subject{
			Code:       strings.TrimSpace(fb.code),
			Name:       strings.TrimSpace(fb.name),
			Instructor: strings.TrimSpace(fb.instructor),
			Units:      units,
			Goals:      fb.goals,
		}
		if isNew {
			return subjectSavedMsg{err: s.AddSubject(context.Background(), subject)}
		}
		return subjectSavedMsg{err: s.UpdateSubject(context.Background(), oldCode, subject)}
	}
}

func (m Model) deleteSubject(code string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return subjectDeletedMsg{err: s.DeleteSubject(context.Background(), code)}
	}
}
