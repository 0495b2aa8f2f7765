package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/tests/testutil"
)

func date(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func addSubject(t *testing.T, s store.SubjectStore, code string) {
	t.Helper()
	if err := s.AddSubject(context.Background(), model.Subject{Code: code, Name: code + " name"}); err != nil {
		t.Fatalf("adding subject %s: %v", code, err)
	}
}

func TestAddTask_RoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	addSubject(t, s, "ENG 1")

	id, err := s.AddTask(ctx, model.Task{
		SubjectCode: "ENG 1",
		Name:        "Essay draft",
		Deadline:    date("2025-12-20"),
		Priority:    model.PriorityMedium,
		Status:      model.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.Task{
		ID:          id,
		SubjectCode: "ENG 1",
		Name:        "Essay draft",
		Deadline:    date("2025-12-20"),
		Priority:    model.PriorityMedium,
		Status:      model.StatusInProgress,
		SubjectName: "ENG 1 name",
	}, *got)
}

func TestAddTask_MissingSubject(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.AddTask(context.Background(), model.Task{
		SubjectCode: "GHOST",
		Name:        "Haunt",
		Deadline:    date("2025-12-20"),
		Priority:    model.PriorityLow,
		Status:      model.StatusNotStarted,
	})
	assert.ErrorIs(t, err, model.ErrMissingReference)
}

func TestAddTask_Validation(t *testing.T) {
	s := testutil.NewTestStore(t)
	addSubject(t, s, "ENG 1")

	valid := model.Task{
		SubjectCode: "ENG 1",
		Name:        "Read",
		Deadline:    date("2025-12-20"),
		Priority:    model.PriorityLow,
		Status:      model.StatusNotStarted,
	}

	tests := []struct {
		name   string
		mutate func(*model.Task)
		field  string
	}{
		{name: "blank name", mutate: func(t *model.Task) { t.Name = "" }, field: "name"},
		{name: "no deadline", mutate: func(t *model.Task) { t.Deadline = time.Time{} }, field: "deadline"},
		{name: "bad priority", mutate: func(t *model.Task) { t.Priority = "Urgent" }, field: "priority"},
		{name: "bad status", mutate: func(t *model.Task) { t.Status = "Done" }, field: "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.mutate(&task)
			_, err := s.AddTask(context.Background(), task)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, fieldNames(verr), tt.field)
		})
	}
}

func TestUpdateTask(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	tasks, err := s.ListTasks(ctx, store.TaskFilter{SubjectCode: ptr("CpE 405")})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	task.Status = model.StatusCompleted
	task.SubjectCode = "IT 212"
	require.NoError(t, s.UpdateTask(ctx, task))

	got, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, "IT 212", got.SubjectCode)
	assert.Equal(t, "Computer Networking 1", got.SubjectName)

	task.SubjectCode = "GHOST"
	assert.ErrorIs(t, s.UpdateTask(ctx, task), model.ErrMissingReference)
}

func TestUpdateTask_Missing(t *testing.T) {
	s := testutil.NewSeededStore(t)

	err := s.UpdateTask(context.Background(), model.Task{
		ID:          9999,
		SubjectCode: "CS 211",
		Name:        "Nothing",
		Deadline:    date("2025-12-20"),
		Priority:    model.PriorityLow,
		Status:      model.StatusNotStarted,
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteTask_IDsNotReused(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	addSubject(t, s, "ENG 1")

	task := model.Task{
		SubjectCode: "ENG 1",
		Name:        "Quiz",
		Deadline:    date("2025-12-20"),
		Priority:    model.PriorityHigh,
		Status:      model.StatusNotStarted,
	}
	first, err := s.AddTask(ctx, task)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, first))
	_, err = s.GetTask(ctx, first)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTask(ctx, first), model.ErrNotFound)

	second, err := s.AddTask(ctx, task)
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestListTasks_DeadlineOrder(t *testing.T) {
	s := testutil.NewSeededStore(t)

	tasks, err := s.ListTasks(context.Background(), store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	for i := 1; i < len(tasks); i++ {
		assert.False(t, tasks[i].Deadline.Before(tasks[i-1].Deadline),
			"%s before %s", tasks[i].DeadlineString(), tasks[i-1].DeadlineString())
	}
	assert.Equal(t, "2025-12-04", tasks[0].DeadlineString())
	assert.Equal(t, "2025-12-12", tasks[4].DeadlineString())
}

func TestTasksDueToday_PriorityOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	addSubject(t, s, "ENG 1")

	today := model.DateOf(testutil.Today)
	for _, p := range []model.Priority{model.PriorityLow, model.PriorityHigh, model.PriorityMedium} {
		_, err := s.AddTask(ctx, model.Task{
			SubjectCode: "ENG 1",
			Name:        string(p) + " task",
			Deadline:    today,
			Priority:    p,
			Status:      model.StatusNotStarted,
		})
		require.NoError(t, err)
	}
	_, err := s.AddTask(ctx, model.Task{
		SubjectCode: "ENG 1",
		Name:        "tomorrow",
		Deadline:    today.AddDate(0, 0, 1),
		Priority:    model.PriorityHigh,
		Status:      model.StatusNotStarted,
	})
	require.NoError(t, err)

	tasks, err := s.TasksDueToday(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, model.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, model.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, model.PriorityLow, tasks[2].Priority)
}
