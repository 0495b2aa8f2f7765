package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nhle/classify/internal/model"
)

// seedTask is a starter task. Its deadline stays a string so the data
// artifact can render it verbatim.
type seedTask struct {
	SubjectCode string
	Name        string
	Deadline    string
	Priority    model.Priority
	Status      model.Status
}

var seedSubjects = []model.Subject{
	{Code: "CS 212", Name: "Computer Organization with Assembly Language", Instructor: "DELA CRUZ, MAURICE OLIVER Y.", Units: 3, Goals: "Learn how assembler and compiler works"},
	{Code: "GEd 109", Name: "Science, Technology and Society", Instructor: "MAGADIA, GLEN FERDINAND C.", Units: 3, Goals: "Defend the research project!"},
	{Code: "CS 211", Name: "Object-Oriented Programming", Instructor: "AGDON, FATIMA MARIE P.", Units: 3, Goals: "Learn more about OOP Java and able to apply on some projects"},
	{Code: "PATHFit 3", Name: "Traditional and Recreational Games", Instructor: "DE CASTRO, JOEY R.", Units: 3, Goals: "Learn how to play table tennis and have a healthy lifestyle"},
	{Code: "Phy 101", Name: "Calculus-Based Physics", Instructor: "MENDOZA, BABY KAREN L.", Units: 3, Goals: "Understand all the lessons"},
	{Code: "CpE 405", Name: "Discrete Mathematics", Instructor: "BAGSIT, CHARLES CONRAD P.", Units: 3, Goals: "Learn more about logics with math!"},
	{Code: "IT 212", Name: "Computer Networking 1", Instructor: "MACATANGAY, LLOYD H.", Units: 3, Goals: "Get CISCO NetAcad certification"},
}

var seedTasks = []seedTask{
	{"CpE 405", "Review for final exam", "2025-12-12", model.PriorityHigh, model.StatusNotStarted},
	{"CS 211", "Review for final exam", "2025-12-09", model.PriorityHigh, model.StatusNotStarted},
	{"CS 211", "Review for quiz", "2025-12-09", model.PriorityHigh, model.StatusInProgress},
	{"CS 212", "Review for final exam and practice coding with assembly language", "2025-12-11", model.PriorityHigh, model.StatusNotStarted},
	{"Phy 101", "Successfully defend the research project in Physics and STS", "2025-12-04", model.PriorityHigh, model.StatusCompleted},
}

var seedSchedule = []model.ScheduleEntry{
	{SubjectCode: "Phy 101", Day: model.Monday, StartTime: "10:00", EndTime: "13:00", Room: "ROOM 402"},
	{SubjectCode: "GEd 109", Day: model.Monday, StartTime: "14:00", EndTime: "17:00", Room: "ROOM 101"},
	{SubjectCode: "CS 211", Day: model.Tuesday, StartTime: "07:00", EndTime: "10:00", Room: "LAB 02"},
	{SubjectCode: "Phy 101", Day: model.Tuesday, StartTime: "11:00", EndTime: "13:00", Room: "ROOM 105"},
	{SubjectCode: "IT 212", Day: model.Wednesday, StartTime: "10:00", EndTime: "13:00", Room: "LAB 06"},
	{SubjectCode: "PATHFit 3", Day: model.Wednesday, StartTime: "14:00", EndTime: "16:00", Room: "GYM"},
	{SubjectCode: "CS 211", Day: model.Thursday, StartTime: "07:00", EndTime: "09:00", Room: "ONLINE"},
	{SubjectCode: "IT 212", Day: model.Thursday, StartTime: "14:00", EndTime: "16:00", Room: "ONLINE"},
	{SubjectCode: "CS 212", Day: model.Thursday, StartTime: "11:00", EndTime: "13:00", Room: "ONLINE"},
	{SubjectCode: "CS 212", Day: model.Friday, StartTime: "07:00", EndTime: "10:00", Room: "LAB 03"},
	{SubjectCode: "CpE 405", Day: model.Saturday, StartTime: "07:00", EndTime: "10:00", Room: "ROOM 103"},
}

const (
	insertSubjectSQL  = "INSERT INTO subjects (SubjectCode, Name, Instructor, Units, Goals) VALUES (?, ?, ?, ?, ?)"
	insertTaskSQL     = "INSERT INTO tasks (SubjectCode, TaskName, Deadline, Priority, Status) VALUES (?, ?, ?, ?, ?)"
	insertScheduleSQL = "INSERT INTO schedule (SubjectCode, Day, StartTime, EndTime, Room) VALUES (?, ?, ?, ?, ?)"
)

// SeedIfEmpty inserts the starter subjects, tasks and schedule when the
// subjects table is empty. It reports whether anything was inserted. The
// check and the inserts share one transaction.
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context) (bool, error) {
	seeded := false
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		found, err := exists(ctx, tx, "SELECT COUNT(*) FROM subjects")
		if err != nil {
			return fmt.Errorf("counting subjects: %w", err)
		}
		if found {
			return nil
		}

		for _, sub := range seedSubjects {
			if _, err := tx.ExecContext(ctx, insertSubjectSQL,
				sub.Code, sub.Name, sub.Instructor, sub.Units, sub.Goals); err != nil {
				return fmt.Errorf("seeding subject %s: %w", sub.Code, mapConstraint(err))
			}
		}

		stmt, err := tx.PreparexContext(ctx, insertTaskSQL)
		if err != nil {
			return fmt.Errorf("preparing task insert: %w", err)
		}
		defer stmt.Close()
		for _, t := range seedTasks {
			if _, err := stmt.ExecContext(ctx,
				t.SubjectCode, t.Name, t.Deadline, string(t.Priority), string(t.Status)); err != nil {
				return fmt.Errorf("seeding task %q: %w", t.Name, mapConstraint(err))
			}
		}

		for _, e := range seedSchedule {
			if _, err := tx.ExecContext(ctx, insertScheduleSQL,
				e.SubjectCode, string(e.Day), e.StartTime, e.EndTime, e.Room); err != nil {
				return fmt.Errorf("seeding schedule for %s: %w", e.SubjectCode, mapConstraint(err))
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seeding database: %w", err)
	}

	if seeded {
		s.logger.Info("database seeded",
			zap.Int("subjects", len(seedSubjects)),
			zap.Int("tasks", len(seedTasks)),
			zap.Int("schedule", len(seedSchedule)))
	}
	return seeded, nil
}
