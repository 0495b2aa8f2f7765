package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nhle/classify/internal/store"
)

// Today is the fixed date test stores treat as the current day. It is a
// Tuesday on which two of the starter tasks fall due.
var Today = time.Date(2025, time.December, 9, 10, 30, 0, 0, time.UTC)

// Clock returns Today on every call.
func Clock() time.Time { return Today }

// NewTestStore creates a SQLiteStore on a fresh file in a temporary
// directory, with the schema applied and the clock fixed at Today. It
// automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "classify_test.db")
	s, err := store.NewSQLiteStore(path, store.WithClock(Clock))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("initializing test store: %v", err)
	}

	return s
}

// NewSeededStore is NewTestStore with the starter dataset loaded.
func NewSeededStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s := NewTestStore(t)
	if _, err := s.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("seeding test store: %v", err)
	}
	return s
}
