package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/classify/internal/model"
)

type taskRow struct {
	TaskID      int64          `db:"TaskID"`
	SubjectCode string         `db:"SubjectCode"`
	TaskName    string         `db:"TaskName"`
	Deadline    sql.NullString `db:"Deadline"`
	Priority    sql.NullString `db:"Priority"`
	Status      sql.NullString `db:"Status"`
	SubjectName sql.NullString `db:"SubjectName"`
}

func (r taskRow) toModel() model.Task {
	t := model.Task{
		ID:          r.TaskID,
		SubjectCode: r.SubjectCode,
		Name:        r.TaskName,
		Priority:    model.Priority(r.Priority.String),
		Status:      model.Status(r.Status.String),
		SubjectName: r.SubjectName.String,
	}
	// Rows written by other tools may carry a malformed date; they keep a
	// zero deadline rather than failing the whole listing.
	if d, err := model.ParseDate(r.Deadline.String); err == nil {
		t.Deadline = d
	}
	return t
}

// taskSelect joins each task with its subject's name.
const taskSelect = `
	SELECT t.TaskID, t.SubjectCode, t.TaskName, t.Deadline, t.Priority, t.Status,
	       s.Name AS SubjectName
	FROM tasks t
	JOIN subjects s ON s.SubjectCode = t.SubjectCode`

// priorityOrder sorts High, Medium, Low, then anything else.
const priorityOrder = `CASE t.Priority WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 3 ELSE 4 END`

// AddTask inserts a task and returns its new id. The subject must exist.
func (s *SQLiteStore) AddTask(ctx context.Context, task model.Task) (int64, error) {
	if err := task.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (SubjectCode, TaskName, Deadline, Priority, Status)
		VALUES (?, ?, ?, ?, ?)`,
		task.SubjectCode, task.Name, task.DeadlineString(),
		string(task.Priority), string(task.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("adding task: %w", mapConstraint(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new task id: %w", err)
	}
	s.logger.Debug("task added", zap.Int64("id", id), zap.String("subject", task.SubjectCode))
	return id, nil
}

// GetTask retrieves a single task by id.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var row taskRow
	err := s.db.GetContext(ctx, &row, taskSelect+" WHERE t.TaskID = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting task %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	task := row.toModel()
	return &task, nil
}

// UpdateTask overwrites every field of the task with the given id.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET SubjectCode = ?, TaskName = ?, Deadline = ?, Priority = ?, Status = ?
		WHERE TaskID = ?`,
		task.SubjectCode, task.Name, task.DeadlineString(),
		string(task.Priority), string(task.Status), task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %d: %w", task.ID, mapConstraint(err))
	}
	if err := checkAffected(res, fmt.Sprintf("task %d", task.ID)); err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// DeleteTask removes a task by id.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE TaskID = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	if err := checkAffected(res, fmt.Sprintf("task %d", id)); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// ListTasks returns tasks matching filter, earliest deadline first.
func (s *SQLiteStore) ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var conditions []string
	var args []any

	if filter.SubjectCode != nil {
		conditions = append(conditions, "t.SubjectCode = ?")
		args = append(args, *filter.SubjectCode)
	}

	query := taskSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.Deadline, t.TaskID"

	return s.selectTasks(ctx, "querying tasks", query, args...)
}

// TasksDueOn returns the tasks whose deadline is date, highest priority
// first.
func (s *SQLiteStore) TasksDueOn(ctx context.Context, date time.Time) ([]model.Task, error) {
	return s.selectTasks(ctx, "querying tasks due on date",
		taskSelect+" WHERE date(t.Deadline) = date(?) ORDER BY "+priorityOrder+", t.TaskID",
		model.FormatDate(date))
}

// TasksDueToday returns the tasks due on the store clock's current date.
func (s *SQLiteStore) TasksDueToday(ctx context.Context) ([]model.Task, error) {
	return s.TasksDueOn(ctx, s.today())
}

func (s *SQLiteStore) selectTasks(ctx context.Context, what, query string, args ...any) ([]model.Task, error) {
	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toModel())
	}
	return tasks, nil
}
