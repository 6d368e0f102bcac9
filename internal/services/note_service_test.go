package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/utils"
)

func paginationFirstPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Offset: 0}
}

func TestNoteService_CreatorOnlyDelete(t *testing.T) {
	store, db := newTestStore(t)
	manager := createUser(t, db, "manager@example.com")
	member := createUser(t, db, "member@example.com")
	project := newProject(t, NewProjectService(store), manager.ID)
	task, err := NewTaskService(store, nil).CreateTask(project, TaskInput{Name: "T", Description: "D"})
	require.NoError(t, err)
	notes := NewNoteService(store)

	note, err := notes.CreateNote(task, member.ID, "  written by member  ")
	require.NoError(t, err)
	assert.Equal(t, "written by member", note.Content)
	assert.Equal(t, member.Email, note.CreatedBy.Email)
	assert.Equal(t, []uuid.UUID{note.ID}, []uuid.UUID(task.NoteIDs))

	assert.ErrorIs(t, notes.DeleteNote(task, note, manager.ID), ErrNotNoteCreator)

	require.NoError(t, notes.DeleteNote(task, note, member.ID))
	assert.Empty(t, task.NoteIDs)

	_, err = notes.GetNote(note.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteService_RejectsEmptyContent(t *testing.T) {
	store, db := newTestStore(t)
	manager := createUser(t, db, "manager@example.com")
	project := newProject(t, NewProjectService(store), manager.ID)
	task, err := NewTaskService(store, nil).CreateTask(project, TaskInput{Name: "T", Description: "D"})
	require.NoError(t, err)

	_, err = NewNoteService(store).CreateNote(task, manager.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyNoteContent)
}
