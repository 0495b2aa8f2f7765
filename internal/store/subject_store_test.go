package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/tests/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestAddSubject_RoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	want := model.Subject{
		Code:       "MATH 101",
		Name:       "Calculus I",
		Instructor: "Reyes, Ana",
		Units:      4,
		Goals:      "Pass the midterm",
	}
	require.NoError(t, s.AddSubject(ctx, want))

	got, err := s.GetSubject(ctx, "MATH 101")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestAddSubject_DuplicateKeepsExisting(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	orig := model.Subject{Code: "CS 1", Name: "Intro", Units: 3}
	require.NoError(t, s.AddSubject(ctx, orig))

	err := s.AddSubject(ctx, model.Subject{Code: "CS 1", Name: "Other", Units: 1})
	require.ErrorIs(t, err, model.ErrDuplicateKey)

	got, err := s.GetSubject(ctx, "CS 1")
	require.NoError(t, err)
	assert.Equal(t, orig, *got)
}

func TestAddSubject_GoalsLength(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	hundred := strings.Repeat("g", model.GoalsMaxLength)
	require.NoError(t, s.AddSubject(ctx, model.Subject{Code: "A", Name: "A", Goals: hundred}))
	got, err := s.GetSubject(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, hundred, got.Goals)

	err = s.AddSubject(ctx, model.Subject{Code: "B", Name: "B", Goals: hundred + "g"})
	require.ErrorIs(t, err, model.ErrValidation)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, fieldNames(verr), "goals")

	_, err = s.GetSubject(ctx, "B")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAddSubject_Validation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		subject model.Subject
		field   string
	}{
		{name: "blank code", subject: model.Subject{Code: "  ", Name: "X"}, field: "code"},
		{name: "blank name", subject: model.Subject{Code: "X"}, field: "name"},
		{name: "negative units", subject: model.Subject{Code: "X", Name: "X", Units: -1}, field: "units"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddSubject(ctx, tt.subject)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, fieldNames(verr), tt.field)
		})
	}

	n, err := s.CountSubjects(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdateSubject_SameCode(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	updated := model.Subject{Code: "CS 211", Name: "OOP", Instructor: "New", Units: 2, Goals: "Ship it"}
	require.NoError(t, s.UpdateSubject(ctx, "CS 211", updated))

	got, err := s.GetSubject(ctx, "CS 211")
	require.NoError(t, err)
	assert.Equal(t, updated, *got)
}

func TestUpdateSubject_RenameCascades(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	before, err := s.ListTasks(ctx, store.TaskFilter{SubjectCode: ptr("CS 211")})
	require.NoError(t, err)
	require.Len(t, before, 2)

	renamed := model.Subject{Code: "CS 311", Name: "Object-Oriented Programming", Units: 3}
	require.NoError(t, s.UpdateSubject(ctx, "CS 211", renamed))

	_, err = s.GetSubject(ctx, "CS 211")
	assert.ErrorIs(t, err, model.ErrNotFound)

	oldTasks, err := s.ListTasks(ctx, store.TaskFilter{SubjectCode: ptr("CS 211")})
	require.NoError(t, err)
	assert.Empty(t, oldTasks)

	newTasks, err := s.ListTasks(ctx, store.TaskFilter{SubjectCode: ptr("CS 311")})
	require.NoError(t, err)
	require.Len(t, newTasks, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, newTasks[i].ID)
		assert.Equal(t, before[i].Name, newTasks[i].Name)
		assert.Equal(t, "CS 311", newTasks[i].SubjectCode)
	}

	entries, err := s.ListSchedule(ctx, store.ScheduleFilter{})
	require.NoError(t, err)
	var moved int
	for _, e := range entries {
		assert.NotEqual(t, "CS 211", e.SubjectCode)
		if e.SubjectCode == "CS 311" {
			moved++
		}
	}
	assert.Equal(t, 2, moved)

	n, err := s.CountSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestUpdateSubject_RenameToTakenCodeChangesNothing(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	err := s.UpdateSubject(ctx, "CS 211", model.Subject{Code: "CS 212", Name: "Clash"})
	require.ErrorIs(t, err, model.ErrDuplicateKey)

	got, err := s.GetSubject(ctx, "CS 211")
	require.NoError(t, err)
	assert.Equal(t, "Object-Oriented Programming", got.Name)

	other, err := s.GetSubject(ctx, "CS 212")
	require.NoError(t, err)
	assert.Equal(t, "Computer Organization with Assembly Language", other.Name)

	tasks, err := s.ListTasks(ctx, store.TaskFilter{SubjectCode: ptr("CS 211")})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestUpdateSubject_Missing(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UpdateSubject(context.Background(), "NOPE", model.Subject{Code: "NEW", Name: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteSubject_Cascades(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteSubject(ctx, "CS 212"))

	_, err := s.GetSubject(ctx, "CS 212")
	assert.ErrorIs(t, err, model.ErrNotFound)

	tasks, err := s.ListTasks(ctx, store.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
	for _, task := range tasks {
		assert.NotEqual(t, "CS 212", task.SubjectCode)
	}

	entries, err := s.ListSchedule(ctx, store.ScheduleFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 9)
	for _, e := range entries {
		assert.NotEqual(t, "CS 212", e.SubjectCode)
	}
}

func TestDeleteSubject_Missing(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.DeleteSubject(context.Background(), "NOPE")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListSubjects_OrderedByCode(t *testing.T) {
	s := testutil.NewSeededStore(t)

	subjects, err := s.ListSubjects(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 7)
	for i := 1; i < len(subjects); i++ {
		assert.Less(t, subjects[i-1].Code, subjects[i].Code)
	}
}
