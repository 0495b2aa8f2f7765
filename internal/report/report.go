package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/store"
)

// Kind identifies one of the canned reports.
type Kind string

const (
	KindSubjectsWithTasks Kind = "SubjectsWithTasks"
	KindUpcomingTasks     Kind = "UpcomingTasks"
	KindTasksToday        Kind = "TasksToday"
	KindCompletedTasks    Kind = "CompletedTasks"
	KindMissingTasks      Kind = "MissingTasks"
	KindScheduleToday     Kind = "ScheduleToday"
)

// kinds lists every report in display order.
var kinds = []Kind{
	KindSubjectsWithTasks,
	KindUpcomingTasks,
	KindTasksToday,
	KindCompletedTasks,
	KindMissingTasks,
	KindScheduleToday,
}

var titles = map[Kind]string{
	KindSubjectsWithTasks: "All Subjects with Tasks",
	KindUpcomingTasks:     "Upcoming Tasks",
	KindTasksToday:        "Tasks Today",
	KindCompletedTasks:    "Completed Tasks",
	KindMissingTasks:      "Missing Tasks",
	KindScheduleToday:     "Schedule for Today",
}

// short names accepted by ParseKind in addition to kind names and titles.
var aliases = map[string]Kind{
	"subjects":  KindSubjectsWithTasks,
	"upcoming":  KindUpcomingTasks,
	"today":     KindTasksToday,
	"completed": KindCompletedTasks,
	"missing":   KindMissingTasks,
	"overdue":   KindMissingTasks,
	"schedule":  KindScheduleToday,
}

var (
	subjectColumns  = []string{"SubjectCode", "Name", "Instructor", "Units", "Tasks"}
	taskColumns     = []string{"TaskName", "Deadline", "Priority", "Status", "SubjectCode", "Name"}
	scheduleColumns = []string{"SubjectCode", "Name", "StartTime", "EndTime", "Room"}
)

// Kinds returns every report kind in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Title returns the human-readable report name.
func (k Kind) Title() string { return titles[k] }

// Valid reports whether k names a known report.
func (k Kind) Valid() bool {
	_, ok := titles[k]
	return ok
}

// ParseKind resolves a kind name, title or short alias, ignoring case,
// spaces, hyphens and underscores.
func ParseKind(s string) (Kind, error) {
	key := normalize(s)
	if k, ok := aliases[key]; ok {
		return k, nil
	}
	for _, k := range kinds {
		if key == normalize(string(k)) || key == normalize(k.Title()) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report %q", s)
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Report is a generated report: a titled table plus the typed records it
// was rendered from.
type Report struct {
	ID          uuid.UUID
	Kind        Kind
	Title       string
	Today       time.Time
	GeneratedAt time.Time
	Columns     []string
	Rows        [][]string

	// Exactly one of these is set, depending on Kind.
	Subjects []model.SubjectWithTasks
	Tasks    []model.Task
	Schedule []model.ScheduleEntry
}

// Len returns the number of records in the report.
func (r *Report) Len() int { return len(r.Rows) }

// Service generates reports from the store.
type Service struct {
	q      store.ReportQuerier
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a report service reading from q. A nil logger
// discards output.
func NewService(q store.ReportQuerier, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{q: q, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds one report as of the current date.
func (s *Service) Generate(ctx context.Context, kind Kind) (*Report, error) {
	now := s.now()
	return s.build(ctx, kind, model.DateOf(now), now)
}

// GenerateAll builds every report, all as of the same date.
func (s *Service) GenerateAll(ctx context.Context) ([]*Report, error) {
	now := s.now()
	today := model.DateOf(now)

	out := make([]*Report, 0, len(kinds))
	for _, k := range kinds {
		r, err := s.build(ctx, k, today, now)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) build(ctx context.Context, kind Kind, today, now time.Time) (*Report, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("generating report: unknown kind %q", kind)
	}

	r := &Report{
		ID:          uuid.New(),
		Kind:        kind,
		Title:       kind.Title(),
		Today:       today,
		GeneratedAt: now,
	}

	var err error
	switch kind {
	case KindSubjectsWithTasks:
		r.Subjects, err = SubjectsWithTasks(ctx, s.q)
		r.Columns, r.Rows = subjectColumns, subjectRows(r.Subjects)
	case KindUpcomingTasks:
		r.Tasks, err = UpcomingTasks(ctx, s.q, today)
	case KindTasksToday:
		r.Tasks, err = TasksToday(ctx, s.q, today)
	case KindCompletedTasks:
		r.Tasks, err = CompletedTasks(ctx, s.q)
	case KindMissingTasks:
		r.Tasks, err = MissingTasks(ctx, s.q, today)
	case KindScheduleToday:
		r.Schedule, err = ScheduleToday(ctx, s.q, today)
		r.Columns, r.Rows = scheduleColumns, scheduleRows(r.Schedule)
	}
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", r.Title, err)
	}
	if r.Columns == nil {
		r.Columns, r.Rows = taskColumns, taskRows(r.Tasks)
	}

	s.logger.Debug("report generated",
		zap.String("id", r.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("today", model.FormatDate(today)),
		zap.Int("rows", r.Len()))
	return r, nil
}

// SubjectsWithTasks lists every subject with its tasks, by subject code.
func SubjectsWithTasks(ctx context.Context, q store.ReportQuerier) ([]model.SubjectWithTasks, error) {
	return q.SubjectsWithTasks(ctx)
}

// UpcomingTasks lists tasks due after today, earliest first.
func UpcomingTasks(ctx context.Context, q store.ReportQuerier, today time.Time) ([]model.Task, error) {
	return q.TasksDueAfter(ctx, today)
}

// TasksToday lists tasks due today, highest priority first.
func TasksToday(ctx context.Context, q store.ReportQuerier, today time.Time) ([]model.Task, error) {
	return q.TasksDueOn(ctx, today)
}

// CompletedTasks lists completed tasks, latest deadline first.
func CompletedTasks(ctx context.Context, q store.ReportQuerier) ([]model.Task, error) {
	return q.CompletedTasks(ctx)
}

// MissingTasks lists unfinished tasks whose deadline has passed, oldest
// first.
func MissingTasks(ctx context.Context, q store.ReportQuerier, today time.Time) ([]model.Task, error) {
	return q.TasksOverdue(ctx, today)
}

// ScheduleToday lists the classes meeting on today's weekday by start time.
func ScheduleToday(ctx context.Context, q store.ReportQuerier, today time.Time) ([]model.ScheduleEntry, error) {
	day := model.WeekdayOf(today)
	return q.ListSchedule(ctx, store.ScheduleFilter{Day: &day})
}

func subjectRows(subjects []model.SubjectWithTasks) [][]string {
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		summaries := make([]string, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			summaries = append(summaries,
				fmt.Sprintf("%s (Due: %s, %s)", t.Name, t.DeadlineString(), t.Status))
		}
		rows = append(rows, []string{
			s.Code, s.Name, s.Instructor, strconv.Itoa(s.Units), strings.Join(summaries, "; "),
		})
	}
	return rows
}

func taskRows(tasks []model.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.Name, t.DeadlineString(), string(t.Priority), string(t.Status), t.SubjectCode, t.SubjectName,
		})
	}
	return rows
}

func scheduleRows(entries []model.ScheduleEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.SubjectCode, e.SubjectName, e.StartTime, e.EndTime, e.Room})
	}
	return rows
}
