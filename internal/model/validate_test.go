package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestSubjectValidate(t *testing.T) {
	assert.NoError(t, Subject{Code: "CS 1", Name: "Intro", Goals: strings.Repeat("é", GoalsMaxLength)}.Validate())

	err := Subject{Code: " ", Name: "", Units: -2, Goals: strings.Repeat("x", GoalsMaxLength+1)}.Validate()
	assert.ElementsMatch(t, []string{"code", "name", "units", "goals"}, fields(t, err))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestTaskValidate(t *testing.T) {
	ok := Task{
		SubjectCode: "CS 1",
		Name:        "Lab",
		Deadline:    time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Priority:    PriorityLow,
		Status:      StatusCompleted,
	}
	assert.NoError(t, ok.Validate())

	err := Task{Priority: "low", Status: "done"}.Validate()
	assert.ElementsMatch(t,
		[]string{"subject_code", "name", "deadline", "priority", "status"},
		fields(t, err))
}

func TestScheduleEntryValidate(t *testing.T) {
	ok := ScheduleEntry{SubjectCode: "CS 1", Day: Monday, StartTime: "07:00", EndTime: "08:30"}
	assert.NoError(t, ok.Validate())

	unpadded := ok
	unpadded.StartTime = "7:00"
	assert.Equal(t, []string{"start_time"}, fields(t, unpadded.Validate()))
	assert.NoError(t, unpadded.Normalized().Validate())

	backwards := ok
	backwards.EndTime = "06:00"
	assert.Equal(t, []string{"end_time"}, fields(t, backwards.Validate()))
}

func TestTaskIsOverdue(t *testing.T) {
	today := time.Date(2025, 12, 9, 15, 0, 0, 0, time.UTC)
	task := Task{Deadline: time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC), Status: StatusInProgress}
	assert.True(t, task.IsOverdue(today))

	task.Status = StatusCompleted
	assert.False(t, task.IsOverdue(today))

	task.Status = StatusNotStarted
	task.Deadline = DateOf(today)
	assert.False(t, task.IsOverdue(today))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, "Subject code already exists", Describe(ErrDuplicateKey))
	assert.Equal(t, "Subject does not exist", Describe(errors.Join(errors.New("insert"), ErrMissingReference)))
	assert.Equal(t, "Record no longer exists", Describe(ErrNotFound))
	assert.Equal(t, "Invalid input: name is required", Describe(NewValidationError("name", "is required")))
	assert.Equal(t, "Error: boom", Describe(errors.New("boom")))
}
