package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/tests/testutil"
)

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestInitialize_IdempotentWithThreeTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classify.db")
	ctx := context.Background()

	for run := 0; run < 2; run++ {
		s, err := store.NewSQLiteStore(path)
		require.NoError(t, err)
		require.NoError(t, s.Initialize(ctx))
		_, err = s.SeedIfEmpty(ctx)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}

	db, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	require.NoError(t, db.Select(&tables, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`))
	assert.Equal(t, []string{"schedule", "subjects", "tasks"}, tables)

	assert.Equal(t, 7, countRows(t, db, "subjects"))
	assert.Equal(t, 5, countRows(t, db, "tasks"))
	assert.Equal(t, 11, countRows(t, db, "schedule"))
}

func TestSeedIfEmpty_OnlyOnce(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	first, err := s.CountSubjects(ctx)
	require.NoError(t, err)

	seeded, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	second, err := s.CountSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSeedIfEmpty_SkipsNonEmptyStore(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	addSubject(t, s, "MINE")

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := s.CountSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteArtifacts(t *testing.T) {
	s := testutil.NewTestStore(t)
	dir := filepath.Join(t.TempDir(), "sql")

	require.NoError(t, s.WriteArtifacts(dir))

	tables, err := os.ReadFile(filepath.Join(dir, store.TablesArtifact))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(tables), "PRAGMA foreign_keys = ON;"))
	for _, name := range []string{"subjects", "tasks", "schedule"} {
		assert.Contains(t, string(tables), "CREATE TABLE IF NOT EXISTS "+name+" (")
	}

	data, err := os.ReadFile(filepath.Join(dir, store.DataArtifact))
	require.NoError(t, err)
	assert.Contains(t, string(data), "('CS 212', 'Computer Organization with Assembly Language',")
	assert.Contains(t, string(data), "('CpE 405', 'Sat', '07:00', '10:00', 'ROOM 103');")

	// Rewritten on every call.
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.DataArtifact), []byte("stale"), 0o644))
	require.NoError(t, s.WriteArtifacts(dir))
	data, err = os.ReadFile(filepath.Join(dir, store.DataArtifact))
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestArtifactScriptsLoadIntoEmptyDatabase(t *testing.T) {
	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "replay.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(store.TablesScript())
	require.NoError(t, err)
	_, err = db.Exec(store.DataScript())
	require.NoError(t, err)

	assert.Equal(t, 7, countRows(t, db, "subjects"))
	assert.Equal(t, 5, countRows(t, db, "tasks"))
	assert.Equal(t, 11, countRows(t, db, "schedule"))
}
