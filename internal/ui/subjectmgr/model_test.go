package subjectmgr

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/classify/internal/keys"
	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/tests/testutil"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, s store.Store) Model {
	t.Helper()
	m := New(s, keys.DefaultKeyMap(), 100, 40)
	m, _ = m.Update(m.Init()())
	return m
}

func TestModel_LoadsSubjectsByCode(t *testing.T) {
	m := loaded(t, testutil.NewSeededStore(t))

	require.Len(t, m.subjects, 7)
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "CS 211", sel.Code)
	assert.Contains(t, m.View(), "Subjects (7)")
	assert.Contains(t, m.View(), "Learn more about OOP Java")
}

func TestModel_CursorWraps(t *testing.T) {
	m := loaded(t, testutil.NewSeededStore(t))

	m, _ = m.Update(runes("k"))
	sel, _ := m.Selected()
	assert.Equal(t, "Phy 101", sel.Code)

	m, _ = m.Update(runes("j"))
	sel, _ = m.Selected()
	assert.Equal(t, "CS 211", sel.Code)
}

func TestModel_EmptyList(t *testing.T) {
	m := loaded(t, testutil.NewTestStore(t))

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No subjects yet")

	m, cmd := m.Update(runes("e"))
	assert.Nil(t, cmd)
	assert.False(t, m.Editing())
}

func TestModel_FormModes(t *testing.T) {
	m := loaded(t, testutil.NewSeededStore(t))

	edit, _ := m.Update(runes("e"))
	assert.True(t, edit.Editing())
	assert.Equal(t, "CS 211", edit.fb.code)
	assert.Equal(t, "3", edit.fb.units)
	assert.Contains(t, edit.View(), "Edit CS 211")

	del, _ := m.Update(runes("d"))
	assert.True(t, del.Editing())
	assert.Contains(t, del.View(), "tasks and schedule entries will be deleted")
}

func TestModel_BackCloses(t *testing.T) {
	m := loaded(t, testutil.NewTestStore(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{}, cmd())
}

func TestSaveSubject_AddAndDuplicate(t *testing.T) {
	s := testutil.NewTestStore(t)
	m := loaded(t, s)

	m.isNew = true
	*m.fb = formBindings{code: " MATH 1 ", name: "Algebra", units: "4", goals: "Pass"}
	msg := m.saveSubject()()
	require.NoError(t, msg.(subjectSavedMsg).err)

	m, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Subject saved", m.statusMsg)

	got, err := s.GetSubject(context.Background(), "MATH 1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Units)

	msg = m.saveSubject()()
	m, _ = m.Update(msg)
	assert.Equal(t, "Subject code already exists", m.statusMsg)
	assert.False(t, m.Editing())
}

func TestSaveSubject_BadUnits(t *testing.T) {
	m := loaded(t, testutil.NewTestStore(t))

	m.isNew = true
	*m.fb = formBindings{code: "X", name: "Y", units: "three"}
	msg := m.saveSubject()().(subjectSavedMsg)
	assert.True(t, errors.Is(msg.err, model.ErrValidation))
}

func TestSaveSubject_RenameCarriesTasks(t *testing.T) {
	s := testutil.NewSeededStore(t)
	m := loaded(t, s)

	m.isNew = false
	m.editingCode = "CS 211"
	*m.fb = formBindings{code: "CS 2110", name: "OOP", units: "3"}
	require.NoError(t, m.saveSubject()().(subjectSavedMsg).err)

	code := "CS 2110"
	tasks, err := s.ListTasks(context.Background(), store.TaskFilter{SubjectCode: &code})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestDeleteSubject(t *testing.T) {
	s := testutil.NewSeededStore(t)
	m := loaded(t, s)

	m, _ = m.Update(m.deleteSubject("CS 211")())
	assert.Equal(t, "Subject deleted", m.statusMsg)

	m, _ = m.Update(m.deleteSubject("CS 211")())
	assert.Equal(t, "Record no longer exists", m.statusMsg)

	n, err := s.CountSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
