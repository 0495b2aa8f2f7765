package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/nhle/classify/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db     *sqlx.DB
	path   string
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the source of "today" used by TasksDueToday and
// TodaysSchedule.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLiteStore) { s.logger = l }
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath with
// foreign-key enforcement and WAL mode enabled on every connection.
// Call Initialize before using it.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection serializes every caller and keeps the
	// per-connection pragmas in force.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", dbPath, err)
	}

	s := &SQLiteStore{
		db:     db,
		path:   dbPath,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Initialize applies every schema version newer than the one recorded in
// the file. It is safe to call on every start.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	var current int
	if err := s.db.GetContext(ctx, &current, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := s.withTx(ctx, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, m.sql); err != nil {
				return err
			}
			// PRAGMA does not take bound parameters.
			_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version))
			return err
		})
		if err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		s.logger.Info("schema migrated", zap.Int("version", m.version), zap.String("path", s.path))
	}

	return nil
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", mapConstraint(err))
	}
	return nil
}

// today returns the store clock's calendar date.
func (s *SQLiteStore) today() time.Time {
	return model.DateOf(s.now())
}

// exists reports whether query returns a non-zero count.
func exists(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, query, args...); err != nil {
		return false, err
	}
	return n > 0, nil
}

// checkAffected turns an update or delete that touched nothing into
// model.ErrNotFound.
func checkAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, model.ErrNotFound)
	}
	return nil
}
