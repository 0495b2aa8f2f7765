package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nhle/classify/internal/model"
)

type subjectRow struct {
	SubjectCode string         `db:"SubjectCode"`
	Name        string         `db:"Name"`
	Instructor  sql.NullString `db:"Instructor"`
	Units       sql.NullInt64  `db:"Units"`
	Goals       sql.NullString `db:"Goals"`
}

func (r subjectRow) toModel() model.Subject {
	return model.Subject{
		Code:       r.SubjectCode,
		Name:       r.Name,
		Instructor: r.Instructor.String,
		Units:      int(r.Units.Int64),
		Goals:      r.Goals.String,
	}
}

const subjectColumns = "SubjectCode, Name, Instructor, Units, Goals"

// AddSubject inserts a new subject. An existing code yields
// model.ErrDuplicateKey and leaves the stored subject untouched.
func (s *SQLiteStore) AddSubject(ctx context.Context, subject model.Subject) error {
	if err := subject.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (SubjectCode, Name, Instructor, Units, Goals)
		VALUES (?, ?, ?, ?, ?)`,
		subject.Code, subject.Name, subject.Instructor, subject.Units, subject.Goals,
	)
	if err != nil {
		return fmt.Errorf("adding subject %s: %w", subject.Code, mapConstraint(err))
	}
	s.logger.Debug("subject added", zap.String("code", subject.Code))
	return nil
}

// GetSubject retrieves a single subject by code.
func (s *SQLiteStore) GetSubject(ctx context.Context, code string) (*model.Subject, error) {
	var row subjectRow
	err := s.db.GetContext(ctx, &row,
		"SELECT "+subjectColumns+" FROM subjects WHERE SubjectCode = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting subject %s: %w", code, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting subject %s: %w", code, err)
	}
	subject := row.toModel()
	return &subject, nil
}

// UpdateSubject replaces the subject stored under oldCode with subject.
// When the code changes, every task and schedule entry of the subject is
// moved to the new code in the same transaction; any failure leaves the
// store as it was.
func (s *SQLiteStore) UpdateSubject(ctx context.Context, oldCode string, subject model.Subject) error {
	if err := subject.Validate(); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		found, err := exists(ctx, tx, "SELECT COUNT(*) FROM subjects WHERE SubjectCode = ?", oldCode)
		if err != nil {
			return fmt.Errorf("looking up subject: %w", err)
		}
		if !found {
			return model.ErrNotFound
		}

		if subject.Code == oldCode {
			_, err := tx.ExecContext(ctx, `
				UPDATE subjects SET Name = ?, Instructor = ?, Units = ?, Goals = ?
				WHERE SubjectCode = ?`,
				subject.Name, subject.Instructor, subject.Units, subject.Goals, oldCode,
			)
			return mapConstraint(err)
		}

		taken, err := exists(ctx, tx, "SELECT COUNT(*) FROM subjects WHERE SubjectCode = ?", subject.Code)
		if err != nil {
			return fmt.Errorf("looking up new code: %w", err)
		}
		if taken {
			return model.ErrDuplicateKey
		}

		// Insert the new parent first and remove the old one last so every
		// foreign key holds after each statement.
		steps := []struct {
			query string
			args  []any
		}{
			{`INSERT INTO subjects (SubjectCode, Name, Instructor, Units, Goals) VALUES (?, ?, ?, ?, ?)`,
				[]any{subject.Code, subject.Name, subject.Instructor, subject.Units, subject.Goals}},
			{`UPDATE tasks SET SubjectCode = ? WHERE SubjectCode = ?`, []any{subject.Code, oldCode}},
			{`UPDATE schedule SET SubjectCode = ? WHERE SubjectCode = ?`, []any{subject.Code, oldCode}},
			{`DELETE FROM subjects WHERE SubjectCode = ?`, []any{oldCode}},
		}
		for _, st := range steps {
			if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
				return mapConstraint(err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating subject %s: %w", oldCode, err)
	}

	if subject.Code != oldCode {
		s.logger.Info("subject renamed",
			zap.String("from", oldCode), zap.String("to", subject.Code))
	}
	return nil
}

// DeleteSubject removes a subject together with its tasks and schedule
// entries.
func (s *SQLiteStore) DeleteSubject(ctx context.Context, code string) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM subjects WHERE SubjectCode = ?", code)
		if err != nil {
			return err
		}
		return checkAffected(res, "subject "+code)
	})
	if err != nil {
		return fmt.Errorf("deleting subject %s: %w", code, err)
	}
	s.logger.Info("subject deleted", zap.String("code", code))
	return nil
}

// ListSubjects returns every subject ordered by code.
func (s *SQLiteStore) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	var rows []subjectRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+subjectColumns+" FROM subjects ORDER BY SubjectCode")
	if err != nil {
		return nil, fmt.Errorf("querying subjects: %w", err)
	}

	subjects := make([]model.Subject, 0, len(rows))
	for _, r := range rows {
		subjects = append(subjects, r.toModel())
	}
	return subjects, nil
}

// CountSubjects returns the number of stored subjects.
func (s *SQLiteStore) CountSubjects(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM subjects"); err != nil {
		return 0, fmt.Errorf("counting subjects: %w", err)
	}
	return n, nil
}
