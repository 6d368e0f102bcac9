package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
)

func setupTeamTest(t *testing.T) (*TeamHandler, *models.User, *models.Project, *models.User) {
	t.Helper()

	db := openTestDB(t)
	manager := &models.User{Email: "manager@example.com", Name: "Manager", PasswordHash: "x"}
	member := &models.User{Email: "member@example.com", Name: "Member", PasswordHash: "x"}
	require.NoError(t, db.Create(manager).Error)
	require.NoError(t, db.Create(member).Error)

	project := &models.Project{ProjectName: "P", ClientName: "C", Description: "D", ManagerID: manager.ID}
	require.NoError(t, db.Create(project).Error)

	return NewTeamHandler(services.NewTeamService(repository.NewStore(db))), manager, project, member
}

func TestTeamHandler_AddMember(t *testing.T) {
	handler, manager, project, member := setupTeamTest(t)

	body, _ := json.Marshal(map[string]string{"id": member.ID.String()})
	c, w := scopedContext(http.MethodPost, "/team", body, manager, project, nil)

	handler.AddMember(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []uuid.UUID{member.ID}, project.TeamUserIDs())
}

func TestTeamHandler_AddMember_InvalidID(t *testing.T) {
	handler, manager, project, _ := setupTeamTest(t)

	body, _ := json.Marshal(map[string]string{"id": "42"})
	c, w := scopedContext(http.MethodPost, "/team", body, manager, project, nil)

	handler.AddMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestTeamHandler_RemoveMember_InvalidParam(t *testing.T) {
	handler, manager, project, _ := setupTeamTest(t)

	c, w := scopedContext(http.MethodDelete, "/team/abc", nil, manager, project, nil)
	handler.RemoveMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestTeamHandler_FindMember_NotFound(t *testing.T) {
	handler, manager, project, _ := setupTeamTest(t)

	body, _ := json.Marshal(map[string]string{"email": "ghost@example.com"})
	c, w := scopedContext(http.MethodPost, "/team/find", body, manager, project, nil)

	handler.FindMember(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
