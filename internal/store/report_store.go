package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nhle/classify/internal/model"
)

type subjectTaskRow struct {
	subjectRow
	TaskID   sql.NullInt64  `db:"TaskID"`
	TaskName sql.NullString `db:"TaskName"`
	Deadline sql.NullString `db:"Deadline"`
	Priority sql.NullString `db:"Priority"`
	Status   sql.NullString `db:"Status"`
}

// SubjectsWithTasks returns every subject ordered by code, each with its
// tasks ordered by deadline. Subjects without tasks are included.
func (s *SQLiteStore) SubjectsWithTasks(ctx context.Context) ([]model.SubjectWithTasks, error) {
	var rows []subjectTaskRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT s.SubjectCode, s.Name, s.Instructor, s.Units, s.Goals,
		       t.TaskID, t.TaskName, t.Deadline, t.Priority, t.Status
		FROM subjects s
		LEFT JOIN tasks t ON t.SubjectCode = s.SubjectCode
		ORDER BY s.SubjectCode, t.Deadline, t.TaskID`)
	if err != nil {
		return nil, fmt.Errorf("querying subjects with tasks: %w", err)
	}

	var out []model.SubjectWithTasks
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1].Code != r.SubjectCode {
			out = append(out, model.SubjectWithTasks{
				Subject: r.subjectRow.toModel(),
				Tasks:   []model.Task{},
			})
		}
		if !r.TaskID.Valid {
			continue
		}
		cur := &out[len(out)-1]
		cur.Tasks = append(cur.Tasks, taskRow{
			TaskID:      r.TaskID.Int64,
			SubjectCode: r.SubjectCode,
			TaskName:    r.TaskName.String,
			Deadline:    r.Deadline,
			Priority:    r.Priority,
			Status:      r.Status,
			SubjectName: sql.NullString{String: r.Name, Valid: true},
		}.toModel())
	}
	return out, nil
}

// TasksDueAfter returns tasks with a deadline strictly after date, earliest
// first.
func (s *SQLiteStore) TasksDueAfter(ctx context.Context, date time.Time) ([]model.Task, error) {
	return s.selectTasks(ctx, "querying upcoming tasks",
		taskSelect+" WHERE date(t.Deadline) > date(?) ORDER BY t.Deadline, t.TaskID",
		model.FormatDate(date))
}

// CompletedTasks returns completed tasks, latest deadline first.
func (s *SQLiteStore) CompletedTasks(ctx context.Context) ([]model.Task, error) {
	return s.selectTasks(ctx, "querying completed tasks",
		taskSelect+" WHERE t.Status = ? ORDER BY t.Deadline DESC, t.TaskID",
		string(model.StatusCompleted))
}

// TasksOverdue returns tasks past their deadline as of date that are not
// completed, oldest deadline first.
func (s *SQLiteStore) TasksOverdue(ctx context.Context, date time.Time) ([]model.Task, error) {
	return s.selectTasks(ctx, "querying overdue tasks",
		taskSelect+` WHERE date(t.Deadline) < date(?) AND COALESCE(t.Status, '') <> ?
		ORDER BY t.Deadline, t.TaskID`,
		model.FormatDate(date), string(model.StatusCompleted))
}
