package model

import "time"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority, most urgent first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities High=1, Medium=2, Low=3. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool { return p.Rank() < 4 }

// Status is the progress state of a task.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a deadline attached to a subject.
type Task struct {
	// ID is assigned by the store on insert and never reused.
	ID int64 `json:"id"`

	SubjectCode string    `json:"subject_code" validate:"notblank"`
	Name        string    `json:"name" validate:"notblank"`
	Deadline    time.Time `json:"deadline"`
	Priority    Priority  `json:"priority" validate:"priority"`
	Status      Status    `json:"status" validate:"status"`

	// SubjectName is populated by queries that join with subjects.
	SubjectName string `json:"subject_name,omitempty"`
}

// Validate checks the task's fields and returns a *ValidationError
// describing every invalid field.
func (t Task) Validate() error {
	return validateStruct(t)
}

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool { return t.Status == StatusCompleted }

// IsOverdue reports whether the task's deadline is before today and it is
// not yet completed.
func (t Task) IsOverdue(today time.Time) bool {
	return !t.IsCompleted() && DateOf(t.Deadline).Before(DateOf(today))
}

// DeadlineString formats the deadline as YYYY-MM-DD.
func (t Task) DeadlineString() string {
	return FormatDate(t.Deadline)
}
