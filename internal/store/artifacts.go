package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Artifact file names written by WriteArtifacts.
const (
	TablesArtifact = "ClassIFY_tables.sql"
	DataArtifact   = "ClassIFY_data.sql"
)

// WriteArtifacts writes the schema and the starter data as plain SQL
// scripts into dir, replacing any previous copies. Both files are rendered
// from the same definitions Initialize and SeedIfEmpty use.
func (s *SQLiteStore) WriteArtifacts(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{TablesArtifact, TablesScript()},
		{DataArtifact, DataScript()},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	s.logger.Info("sql artifacts written", zap.String("dir", dir))
	return nil
}

// TablesScript renders the schema as a standalone SQL script.
func TablesScript() string {
	return "PRAGMA foreign_keys = ON;\n\n" + tablesSQL + "\n" + indexesSQL
}

// DataScript renders the starter dataset as INSERT statements.
func DataScript() string {
	var b strings.Builder

	b.WriteString("-- Subjects\n")
	b.WriteString("INSERT INTO subjects (SubjectCode, Name, Instructor, Units, Goals) VALUES\n")
	for i, sub := range seedSubjects {
		writeValues(&b, i == len(seedSubjects)-1,
			quote(sub.Code), quote(sub.Name), quote(sub.Instructor), strconv.Itoa(sub.Units), quote(sub.Goals))
	}

	b.WriteString("\n-- Tasks\n")
	b.WriteString("INSERT INTO tasks (SubjectCode, TaskName, Deadline, Priority, Status) VALUES\n")
	for i, t := range seedTasks {
		writeValues(&b, i == len(seedTasks)-1,
			quote(t.SubjectCode), quote(t.Name), quote(t.Deadline), quote(string(t.Priority)), quote(string(t.Status)))
	}

	b.WriteString("\n-- Schedule\n")
	b.WriteString("INSERT INTO schedule (SubjectCode, Day, StartTime, EndTime, Room) VALUES\n")
	for i, e := range seedSchedule {
		writeValues(&b, i == len(seedSchedule)-1,
			quote(e.SubjectCode), quote(string(e.Day)), quote(e.StartTime), quote(e.EndTime), quote(e.Room))
	}

	return b.String()
}

func writeValues(b *strings.Builder, last bool, values ...string) {
	b.WriteString("(")
	b.WriteString(strings.Join(values, ", "))
	if last {
		b.WriteString(");\n")
	} else {
		b.WriteString("),\n")
	}
}

// quote renders s as a SQL string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
