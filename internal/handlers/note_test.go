package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
)

func TestNoteHandler_CreateAndDelete(t *testing.T) {
	db := openTestDB(t)
	store := repository.NewStore(db)

	author := &models.User{Email: "author@example.com", Name: "Author", PasswordHash: "x"}
	require.NoError(t, db.Create(author).Error)
	project := &models.Project{ProjectName: "P", ClientName: "C", Description: "D", ManagerID: author.ID}
	require.NoError(t, db.Create(project).Error)
	task, err := services.NewTaskService(store, nil).CreateTask(project, services.TaskInput{Name: "T", Description: "D"})
	require.NoError(t, err)

	handler := NewNoteHandler(services.NewNoteService(store))

	body, _ := json.Marshal(map[string]string{"content": "# Heading"})
	c, w := scopedContext(http.MethodPost, "/notes", body, author, project, task)
	handler.CreateNote(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.NoteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Contains(t, created.ContentHTML, "<h1>Heading</h1>")
	assert.Equal(t, "Author", created.CreatedBy.Name)
	assert.Equal(t, task.ID, created.TaskID)

	note, err := services.NewNoteService(store).GetNote(created.ID)
	require.NoError(t, err)

	c, w = scopedContext(http.MethodDelete, "/notes/1", nil, author, project, task)
	middleware.Scope(c).Note = note
	handler.DeleteNote(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, task.NoteIDs)
}

func TestNoteHandler_CreateNote_MissingContent(t *testing.T) {
	db := openTestDB(t)
	author := &models.User{Email: "author@example.com", Name: "Author", PasswordHash: "x"}
	require.NoError(t, db.Create(author).Error)

	handler := NewNoteHandler(services.NewNoteService(repository.NewStore(db)))

	body, _ := json.Marshal(map[string]string{})
	c, w := scopedContext(http.MethodPost, "/notes", body, author, &models.Project{}, &models.Task{})
	handler.CreateNote(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "content")
}
