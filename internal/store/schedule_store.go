package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/classify/internal/model"
)

type scheduleRow struct {
	ScheduleID  int64          `db:"ScheduleID"`
	SubjectCode string         `db:"SubjectCode"`
	Day         string         `db:"Day"`
	StartTime   string         `db:"StartTime"`
	EndTime     string         `db:"EndTime"`
	Room        sql.NullString `db:"Room"`
	SubjectName sql.NullString `db:"SubjectName"`
}

func (r scheduleRow) toModel() model.ScheduleEntry {
	return model.ScheduleEntry{
		ID:          r.ScheduleID,
		SubjectCode: r.SubjectCode,
		Day:         model.Weekday(r.Day),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Room:        r.Room.String,
		SubjectName: r.SubjectName.String,
	}
}

const scheduleSelect = `
	SELECT e.ScheduleID, e.SubjectCode, e.Day, e.StartTime, e.EndTime, e.Room,
	       s.Name AS SubjectName
	FROM schedule e
	JOIN subjects s ON s.SubjectCode = e.SubjectCode`

// dayOrder sorts Monday first.
const dayOrder = `CASE e.Day
	WHEN 'Mon' THEN 1 WHEN 'Tue' THEN 2 WHEN 'Wed' THEN 3 WHEN 'Thu' THEN 4
	WHEN 'Fri' THEN 5 WHEN 'Sat' THEN 6 WHEN 'Sun' THEN 7 ELSE 8 END`

// AddScheduleEntry inserts a schedule entry and returns its new id. Clock
// times are stored zero-padded.
func (s *SQLiteStore) AddScheduleEntry(ctx context.Context, entry model.ScheduleEntry) (int64, error) {
	entry = entry.Normalized()
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule (SubjectCode, Day, StartTime, EndTime, Room)
		VALUES (?, ?, ?, ?, ?)`,
		entry.SubjectCode, string(entry.Day), entry.StartTime, entry.EndTime, entry.Room,
	)
	if err != nil {
		return 0, fmt.Errorf("adding schedule entry: %w", mapConstraint(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new schedule id: %w", err)
	}
	s.logger.Debug("schedule entry added", zap.Int64("id", id), zap.String("subject", entry.SubjectCode))
	return id, nil
}

// GetScheduleEntry retrieves a single schedule entry by id.
func (s *SQLiteStore) GetScheduleEntry(ctx context.Context, id int64) (*model.ScheduleEntry, error) {
	var row scheduleRow
	err := s.db.GetContext(ctx, &row, scheduleSelect+" WHERE e.ScheduleID = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting schedule entry %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting schedule entry %d: %w", id, err)
	}
	entry := row.toModel()
	return &entry, nil
}

// UpdateScheduleEntry overwrites every field of the entry with the given id.
func (s *SQLiteStore) UpdateScheduleEntry(ctx context.Context, entry model.ScheduleEntry) error {
	entry = entry.Normalized()
	if err := entry.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE schedule SET SubjectCode = ?, Day = ?, StartTime = ?, EndTime = ?, Room = ?
		WHERE ScheduleID = ?`,
		entry.SubjectCode, string(entry.Day), entry.StartTime, entry.EndTime, entry.Room, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule entry %d: %w", entry.ID, mapConstraint(err))
	}
	if err := checkAffected(res, fmt.Sprintf("schedule entry %d", entry.ID)); err != nil {
		return fmt.Errorf("updating schedule entry: %w", err)
	}
	return nil
}

// DeleteScheduleEntry removes a schedule entry by id.
func (s *SQLiteStore) DeleteScheduleEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM schedule WHERE ScheduleID = ?", id)
	if err != nil {
		return fmt.Errorf("deleting schedule entry %d: %w", id, err)
	}
	if err := checkAffected(res, fmt.Sprintf("schedule entry %d", id)); err != nil {
		return fmt.Errorf("deleting schedule entry: %w", err)
	}
	return nil
}

// ListSchedule returns entries matching filter ordered Monday to Sunday,
// then by start time.
func (s *SQLiteStore) ListSchedule(ctx context.Context, filter ScheduleFilter) ([]model.ScheduleEntry, error) {
	var conditions []string
	var args []any

	if filter.Day != nil {
		conditions = append(conditions, "e.Day = ?")
		args = append(args, string(*filter.Day))
	}

	query := scheduleSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + dayOrder + ", e.StartTime, e.ScheduleID"

	var rows []scheduleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	entries := make([]model.ScheduleEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toModel())
	}
	return entries, nil
}

// TodaysSchedule returns the entries for the weekday of the store clock's
// current date.
func (s *SQLiteStore) TodaysSchedule(ctx context.Context) ([]model.ScheduleEntry, error) {
	day := model.WeekdayOf(s.today())
	return s.ListSchedule(ctx, ScheduleFilter{Day: &day})
}
