package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/report"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/internal/theme"
	"github.com/nhle/classify/internal/ui"
	"github.com/nhle/classify/internal/ui/command"
	"github.com/nhle/classify/internal/ui/dashboard"
	helpview "github.com/nhle/classify/internal/ui/help"
	"github.com/nhle/classify/internal/ui/reports"
	"github.com/nhle/classify/internal/ui/schedulemgr"
	"github.com/nhle/classify/internal/ui/subjectmgr"
	"github.com/nhle/classify/internal/ui/taskmgr"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewSubjects
	ViewTasks
	ViewSchedule
	ViewReports
	ViewHelp
	ViewCommand
)

// tabLabels name the switchable views, in key order 1-5.
var tabLabels = []string{"1 Dashboard", "2 Subjects", "3 Tasks", "4 Schedule", "5 Reports"}

// Config carries the runtime settings the UI needs.
type Config struct {
	// ExportDir receives exported reports.
	ExportDir string
	Logger    *zap.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
	// Settings and ConfigPath let the theme command persist its choice.
	// Without a path the theme only changes for this session.
	Settings   *model.AppConfig
	ConfigPath string
}

// themeSavedMsg reports the outcome of persisting a theme choice.
type themeSavedMsg struct {
	name string
	err  error
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	keys         *keys.KeyMap
	logger       *zap.Logger
	now          func() time.Time
	settings     *model.AppConfig
	configPath   string
	dashboard    dashboard.Model
	subjectView  subjectmgr.Model
	taskView     taskmgr.Model
	scheduleView schedulemgr.Model
	reportView   reports.Model
	helpView     helpview.Model
	commandView  command.Model
	statusMsg    string
	ready        bool
}

// New creates a new root application model over the given store and
// report service.
func New(s store.Store, svc *report.Service, cfg Config) Model {
	k := keys.DefaultKeyMap()
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		currentView:  ViewDashboard,
		store:        s,
		keys:         k,
		logger:       logger,
		now:          now,
		settings:     cfg.Settings,
		configPath:   cfg.ConfigPath,
		dashboard:    dashboard.New(s, now, 80, 24),
		subjectView:  subjectmgr.New(s, k, 80, 24),
		taskView:     taskmgr.New(s, k, now, 80, 24),
		scheduleView: schedulemgr.New(s, k, 80, 24),
		reportView:   reports.New(svc, k, cfg.ExportDir, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
	}
}

// Init loads every view so switching between them is instant.
func (m Model) Init() tea.Cmd {
	return m.refreshAll()
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(
		m.dashboard.Init(),
		m.subjectView.Init(),
		m.taskView.Init(),
		m.scheduleView.Init(),
		m.reportView.Init(),
	)
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState {
	return m.currentView
}

// Update handles messages and dispatches them to the views.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.dashboard.SetSize(w, h)
		m.subjectView.SetSize(w, h)
		m.taskView.SetSize(w, h)
		m.scheduleView.SetSize(w, h)
		m.reportView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		return m, nil

	case subjectmgr.CloseMsg, taskmgr.CloseMsg, schedulemgr.CloseMsg, reports.CloseMsg:
		m.currentView = ViewDashboard
		return m, nil

	case subjectmgr.ChangedMsg:
		// Renames and deletes cascade into tasks and schedule.
		return m, tea.Batch(
			m.dashboard.Init(),
			m.taskView.Init(),
			m.scheduleView.Init(),
			m.reportView.Init(),
		)

	case taskmgr.ChangedMsg, schedulemgr.ChangedMsg:
		return m, tea.Batch(m.dashboard.Init(), m.reportView.Init())

	case reports.ExportedMsg:
		if msg.Err != nil {
			m.logger.Warn("report export failed", zap.Error(msg.Err))
		} else {
			m.logger.Info("report exported", zap.String("path", msg.Path))
		}
		var cmd tea.Cmd
		m.reportView, cmd = m.reportView.Update(msg)
		return m, cmd

	case themeSavedMsg:
		if msg.err != nil {
			m.logger.Warn("saving theme", zap.String("path", m.configPath), zap.Error(msg.err))
			m.statusMsg = "Theme " + msg.name + " applied but not saved: " + msg.err.Error()
			return m, nil
		}
		m.logger.Info("theme saved", zap.String("theme", msg.name), zap.String("path", m.configPath))
		m.statusMsg = "Theme set to " + msg.name
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
		return m.updateActiveView(msg)
	}

	return m.broadcast(msg)
}

// handleGlobalKey processes keys that work across views. Keys reach the
// active view untouched while it is editing a form or the command palette
// is open.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	if m.currentView == ViewCommand {
		if key.Matches(msg, m.keys.Back) {
			m.commandView.Reset()
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false
	}
	if m.editing() {
		return m, nil, false
	}

	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		if m.currentView != ViewHelp {
			m.previousView = m.currentView
		}
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Back) && m.currentView == ViewHelp:
		m.currentView = m.previousView
		return m, nil, true

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshAll(), true

	case key.Matches(msg, m.keys.Dashboard):
		m.currentView = ViewDashboard
		return m, nil, true
	case key.Matches(msg, m.keys.Subjects):
		m.currentView = ViewSubjects
		return m, nil, true
	case key.Matches(msg, m.keys.Tasks):
		m.currentView = ViewTasks
		return m, nil, true
	case key.Matches(msg, m.keys.Schedule):
		m.currentView = ViewSchedule
		return m, nil, true
	case key.Matches(msg, m.keys.Reports):
		m.currentView = ViewReports
		return m, nil, true
	}
	return m, nil, false
}

// editing reports whether the active view owns the keyboard.
func (m Model) editing() bool {
	switch m.currentView {
	case ViewSubjects:
		return m.subjectView.Editing()
	case ViewTasks:
		return m.taskView.Editing()
	case ViewSchedule:
		return m.scheduleView.Editing()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewSubjects:
		m.subjectView, cmd = m.subjectView.Update(msg)
	case ViewTasks:
		m.taskView, cmd = m.taskView.Update(msg)
	case ViewSchedule:
		m.scheduleView, cmd = m.scheduleView.Update(msg)
	case ViewReports:
		m.reportView, cmd = m.reportView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// broadcast hands a non-key message to every view. Load results arrive for
// views that are not on screen, and each view ignores what it does not own.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 7)
	m.dashboard, cmds[0] = m.dashboard.Update(msg)
	m.subjectView, cmds[1] = m.subjectView.Update(msg)
	m.taskView, cmds[2] = m.taskView.Update(msg)
	m.scheduleView, cmds[3] = m.scheduleView.Update(msg)
	m.reportView, cmds[4] = m.reportView.Update(msg)
	m.helpView, cmds[5] = m.helpView.Update(msg)
	m.commandView, cmds[6] = m.commandView.Update(msg)
	return m, tea.Batch(cmds...)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.Header(m.now(), tabLabels, m.activeTab())
	content := m.renderContent()
	statusBar := m.layout.StatusBar(m.keyHints())

	return m.layout.Frame(header, content, statusBar)
}

// activeTab returns the tab to highlight, keeping the underlying view
// highlighted behind help and the command palette.
func (m Model) activeTab() int {
	v := m.currentView
	if v == ViewHelp || v == ViewCommand {
		v = m.previousView
	}
	return int(v)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewSubjects:
		return m.subjectView.View()
	case ViewTasks:
		return m.taskView.View()
	case ViewSchedule:
		return m.scheduleView.View()
	case ViewReports:
		return m.reportView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.editing() {
		return "enter next/submit | shift+tab previous | esc cancel"
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewSubjects:
		return "n new | e edit | d delete | 1-5 views | ? help | q quit"
	case ViewTasks, ViewSchedule:
		return "n new | e edit | d delete | f filter | 1-5 views | ? help | q quit"
	case ViewReports:
		return "tab next | x csv | X xlsx | 1-5 views | ? help | q quit"
	default:
		return "1-5 views | : command | r refresh | ? help | q quit"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(input string) tea.Cmd {
	m.statusMsg = ""
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)
	m.logger.Debug("command", zap.String("name", name), zap.String("arg", arg))

	switch strings.ToLower(name) {
	case "quit", "q", "exit":
		return tea.Quit
	case "home", "dashboard":
		m.currentView = ViewDashboard
	case "subjects":
		m.currentView = ViewSubjects
	case "tasks":
		m.currentView = ViewTasks
		if arg != "" {
			return m.taskView.SetFilter(arg)
		}
	case "schedule":
		m.currentView = ViewSchedule
		if arg == "" {
			return nil
		}
		var day model.Weekday
		if !strings.EqualFold(arg, "all") {
			d, err := model.ParseWeekday(arg)
			if err != nil {
				m.statusMsg = model.Describe(err)
				return nil
			}
			day = d
		}
		return m.scheduleView.SetDay(day)
	case "reports":
		m.currentView = ViewReports
	case "help":
		m.currentView = ViewHelp
	case "refresh":
		return m.refreshAll()
	case "theme":
		return m.setTheme(strings.ToLower(arg))

	case "report":
		kind, err := report.ParseKind(arg)
		if err != nil {
			m.statusMsg = err.Error()
			return nil
		}
		m.currentView = ViewReports
		return m.reportView.Show(kind)

	case "due":
		date, err := model.ParseDate(arg)
		if err != nil {
			m.statusMsg = model.Describe(err)
			return nil
		}
		m.currentView = ViewDashboard
		return m.dashboard.LookupDue(date)

	case "export":
		format := strings.ToLower(arg)
		if format != report.FormatCSV && format != report.FormatXLSX {
			m.statusMsg = "usage: export csv|xlsx"
			return nil
		}
		m.currentView = ViewReports
		return m.reportView.Export(format)

	default:
		m.statusMsg = fmt.Sprintf("unknown command %q", input)
	}
	return nil
}

// setTheme applies the named theme and, when a config file is known,
// saves it as display.theme.
func (m *Model) setTheme(name string) tea.Cmd {
	if name == "" {
		m.statusMsg = "usage: theme default|blue|green|mono"
		return nil
	}
	if err := theme.Use(name); err != nil {
		m.statusMsg = err.Error()
		return nil
	}
	if m.settings == nil || m.configPath == "" {
		m.statusMsg = "Theme set to " + name
		return nil
	}

	cfg := *m.settings
	cfg.Display.Theme = name
	m.settings = &cfg
	path := m.configPath
	return func() tea.Msg {
		return themeSavedMsg{name: name, err: model.SaveConfig(path, &cfg)}
	}
}
