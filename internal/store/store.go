package store

import (
	"context"
	"time"

	"github.com/nhle/classify/internal/model"
)

// TaskFilter narrows task listings. A nil field means no restriction.
type TaskFilter struct {
	SubjectCode *string
}

// ScheduleFilter narrows schedule listings. A nil field means no restriction.
type ScheduleFilter struct {
	Day *model.Weekday
}

// SubjectStore persists subjects. Deleting or renaming a subject carries
// its tasks and schedule entries along.
type SubjectStore interface {
	AddSubject(ctx context.Context, subject model.Subject) error
	GetSubject(ctx context.Context, code string) (*model.Subject, error)
	UpdateSubject(ctx context.Context, oldCode string, subject model.Subject) error
	DeleteSubject(ctx context.Context, code string) error
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	CountSubjects(ctx context.Context) (int, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	AddTask(ctx context.Context, task model.Task) (int64, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	TasksDueOn(ctx context.Context, date time.Time) ([]model.Task, error)
	TasksDueToday(ctx context.Context) ([]model.Task, error)
}

// ScheduleStore persists weekly schedule entries.
type ScheduleStore interface {
	AddScheduleEntry(ctx context.Context, entry model.ScheduleEntry) (int64, error)
	GetScheduleEntry(ctx context.Context, id int64) (*model.ScheduleEntry, error)
	UpdateScheduleEntry(ctx context.Context, entry model.ScheduleEntry) error
	DeleteScheduleEntry(ctx context.Context, id int64) error
	ListSchedule(ctx context.Context, filter ScheduleFilter) ([]model.ScheduleEntry, error)
	TodaysSchedule(ctx context.Context) ([]model.ScheduleEntry, error)
}

// ReportQuerier is the read-only surface the report layer needs. Every
// date-dependent query takes the date explicitly.
type ReportQuerier interface {
	SubjectsWithTasks(ctx context.Context) ([]model.SubjectWithTasks, error)
	TasksDueAfter(ctx context.Context, date time.Time) ([]model.Task, error)
	TasksDueOn(ctx context.Context, date time.Time) ([]model.Task, error)
	CompletedTasks(ctx context.Context) ([]model.Task, error)
	TasksOverdue(ctx context.Context, date time.Time) ([]model.Task, error)
	ListSchedule(ctx context.Context, filter ScheduleFilter) ([]model.ScheduleEntry, error)
}

// Store defines the full persistence interface of the organizer.
type Store interface {
	SubjectStore
	TaskStore
	ScheduleStore
	ReportQuerier

	Initialize(ctx context.Context) error
	SeedIfEmpty(ctx context.Context) (bool, error)
	WriteArtifacts(dir string) error
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
