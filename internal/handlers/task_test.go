package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"gorm.io/gorm"
)

type fakeCompleter struct {
	content string
	err     error
	prompts []string
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	for _, message := range request.Messages {
		f.prompts = append(f.prompts, message.Content)
	}
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	store     repository.Store
	completer *fakeCompleter
	handler   *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())
	suite.store = repository.NewStore(suite.db)
	suite.completer = &fakeCompleter{}

	ai := services.NewAIServiceWithClient(suite.completer)
	suite.handler = NewTaskHandler(services.NewTaskService(suite.store, ai))
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(manager *models.User) *models.Project {
	project := &models.Project{
		ProjectName: "Test Project",
		ClientName:  "Acme",
		Description: "Test Description",
		ManagerID:   manager.ID,
	}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

func (suite *TaskHandlerTestSuite) createTestTask(project *models.Project, name string) *models.Task {
	task, err := services.NewTaskService(suite.store, nil).CreateTask(project, services.TaskInput{
		Name:        name,
		Description: "Test Description",
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskHandlerTestSuite) reloadProject(project *models.Project) models.Project {
	var fresh models.Project
	suite.Require().NoError(suite.db.Where("id = ?", project.ID).First(&fresh).Error)
	return fresh
}

// TestCreateTask_Success tests that a created task is appended to the project
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)

	body, _ := json.Marshal(map[string]string{
		"name":        "Write copy",
		"description": "Landing page copy",
	})
	c, w := scopedContext(http.MethodPost, "/tasks", body, user, project, nil)

	suite.handler.CreateTask(c)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Write copy", response.Name)
	assert.Equal(suite.T(), models.TaskStatusPending, response.Status)
	assert.Equal(suite.T(), project.ID, response.ProjectID)

	fresh := suite.reloadProject(project)
	assert.Equal(suite.T(), []uuid.UUID{response.ID}, []uuid.UUID(fresh.TaskIDs))
}

// TestCreateTask_InvalidRequest tests validation failure details
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)

	body, _ := json.Marshal(map[string]string{"name": "No description"})
	c, w := scopedContext(http.MethodPost, "/tasks", body, user, project, nil)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "VALIDATION_FAILED", response["code"])
	details := response["details"].([]interface{})
	suite.Require().Len(details, 1)
	assert.Equal(suite.T(), "description", details[0].(map[string]interface{})["field"])
}

// TestCreateTask_MalformedJSON tests a body that is not JSON
func (suite *TaskHandlerTestSuite) TestCreateTask_MalformedJSON() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)

	c, w := scopedContext(http.MethodPost, "/tasks", []byte("{not json"), user, project, nil)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "INVALID_INPUT")
}

// TestListTasks_Success tests listing tasks of the project
func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	other := suite.createTestProject(user)
	suite.createTestTask(project, "Mine")
	suite.createTestTask(other, "Not mine")

	c, w := scopedContext(http.MethodGet, "/tasks", nil, user, project, nil)

	suite.handler.ListTasks(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 1)
	assert.Equal(suite.T(), "Mine", response.Tasks[0].Name)
}

// TestUpdateTask_Success tests successful task update
func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	task := suite.createTestTask(project, "Original")

	body, _ := json.Marshal(map[string]string{
		"name":        "Renamed",
		"description": "New description",
	})
	c, w := scopedContext(http.MethodPut, "/tasks/1", body, user, project, task)

	suite.handler.UpdateTask(c)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var stored models.Task
	suite.Require().NoError(suite.db.Where("id = ?", task.ID).First(&stored).Error)
	assert.Equal(suite.T(), "Renamed", stored.Name)
	assert.Equal(suite.T(), "New description", stored.Description)
}

// TestUpdateTask_BlankFields tests that whitespace-only fields are rejected
func (suite *TaskHandlerTestSuite) TestUpdateTask_BlankFields() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	task := suite.createTestTask(project, "Original")

	body, _ := json.Marshal(map[string]string{
		"name":        "   ",
		"description": "Still here",
	})
	c, w := scopedContext(http.MethodPut, "/tasks/1", body, user, project, task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTask_Success tests deleting a task and its sequence entry
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	task := suite.createTestTask(project, "Doomed")

	c, w := scopedContext(http.MethodDelete, "/tasks/1", nil, user, project, task)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
	assert.Empty(suite.T(), suite.reloadProject(project).TaskIDs)
}

// TestUpdateStatus_RecordsActor tests that the caller is appended to the history
func (suite *TaskHandlerTestSuite) TestUpdateStatus_RecordsActor() {
	manager := suite.createTestUser("manager@example.com")
	member := suite.createTestUser("member@example.com")
	project := suite.createTestProject(manager)
	task := suite.createTestTask(project, "Work")

	body, _ := json.Marshal(map[string]string{"status": "onHold"})
	c, w := scopedContext(http.MethodPost, "/status", body, member, project, task)

	suite.handler.UpdateStatus(c)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.TaskStatusOnHold, response.Status)
	suite.Require().Len(response.CompletedBy, 1)
	suite.Require().NotNil(response.CompletedBy[0].User)
	assert.Equal(suite.T(), member.ID, response.CompletedBy[0].User.ID)
}

// TestGetTask_PopulatesNotes tests that notes come back in sequence order with creators
func (suite *TaskHandlerTestSuite) TestGetTask_PopulatesNotes() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	task := suite.createTestTask(project, "Noted")

	notes := services.NewNoteService(suite.store)
	_, err := notes.CreateNote(task, user.ID, "first")
	suite.Require().NoError(err)
	_, err = notes.CreateNote(task, user.ID, "second")
	suite.Require().NoError(err)

	c, w := scopedContext(http.MethodGet, "/tasks/1", nil, user, project, task)

	suite.handler.GetTask(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Notes, 2)
	assert.Equal(suite.T(), "first", response.Notes[0].Content)
	assert.Equal(suite.T(), "second", response.Notes[1].Content)
	assert.Equal(suite.T(), user.Email, response.Notes[0].CreatedBy.Email)
	assert.Len(suite.T(), response.NoteIDs, 2)
}

// TestGenerateTasks_Success tests AI drafts are cleaned and returned
func (suite *TaskHandlerTestSuite) TestGenerateTasks_Success() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	suite.completer.content = "```json\n[{\"name\": \"Design\", \"description\": \"Draw mockups\"}, {\"name\": \"  \", \"description\": \"blank\"}, {\"name\": \"Ship\", \"description\": \"\"}]\n```"

	body, _ := json.Marshal(map[string]string{"text": "Design the site then ship it"})
	c, w := scopedContext(http.MethodPost, "/tasks/generate", body, user, project, nil)

	suite.handler.GenerateTasks(c)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Tasks []dto.GeneratedTaskDTO `json:"tasks"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 2)
	assert.Equal(suite.T(), "Design", response.Tasks[0].Name)
	assert.Equal(suite.T(), "Ship", response.Tasks[1].Description)
	suite.Require().Len(suite.completer.prompts, 1)
	assert.Contains(suite.T(), suite.completer.prompts[0], project.ProjectName)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestGenerateTasks_AIFailure tests that upstream errors are reported generically
func (suite *TaskHandlerTestSuite) TestGenerateTasks_AIFailure() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	suite.completer.err = errors.New("upstream exploded")

	body, _ := json.Marshal(map[string]string{"text": "anything"})
	c, w := scopedContext(http.MethodPost, "/tasks/generate", body, user, project, nil)

	suite.handler.GenerateTasks(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "upstream exploded")
}

// TestGenerateTasks_NotConfigured tests the handler without an AI service
func (suite *TaskHandlerTestSuite) TestGenerateTasks_NotConfigured() {
	user := suite.createTestUser("manager@example.com")
	project := suite.createTestProject(user)
	handler := NewTaskHandler(services.NewTaskService(suite.store, nil))

	body, _ := json.Marshal(map[string]string{"text": "anything"})
	c, w := scopedContext(http.MethodPost, "/tasks/generate", body, user, project, nil)

	handler.GenerateTasks(c)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

// Run the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
