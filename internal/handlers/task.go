package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type taskRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=10000"`
}

func (r taskRequest) input() services.TaskInput {
	return services.TaskInput{Name: r.Name, Description: r.Description}
}

// ListTasks returns the tasks of the resolved project
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListProjectTasks(middleware.Scope(c).Project)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns the resolved task with its status history and notes
func (h *TaskHandler) GetTask(c *gin.Context) {
	h.respondTaskDetail(c, http.StatusOK, middleware.Scope(c).Task)
}

// CreateTask creates a task in the resolved project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(middleware.Scope(c).Project, req.input())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask replaces the task name and description
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(middleware.Scope(c).Task, req.input())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes the task with its notes and history
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	scope := middleware.Scope(c)
	if err := h.taskService.DeleteTask(scope.Project, scope.Task); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// UpdateStatus sets the task status and records the caller in its history
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required,taskstatus"`
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	scope := middleware.Scope(c)
	task, err := h.taskService.UpdateStatus(scope.Task, models.TaskStatus(req.Status), scope.User.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	h.respondTaskDetail(c, http.StatusOK, task)
}

// GenerateTasks suggests task drafts for the project from free text using AI
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required,max=10000"`
	}

	var req GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	drafts, err := h.taskService.GenerateTaskDrafts(c.Request.Context(), middleware.Scope(c).Project, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	dtos := make([]dto.GeneratedTaskDTO, len(drafts))
	for i, draft := range drafts {
		dtos[i] = dto.GeneratedTaskDTO{Name: draft.Name, Description: draft.Description}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dtos,
	})
}

func (h *TaskHandler) respondTaskDetail(c *gin.Context, status int, task *models.Task) {
	detail, err := h.taskService.GetTaskDetail(task)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(status, dto.ToTaskDetailDTO(detail.Task, detail.History, detail.Notes))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTaskInput):
		apierrors.BadRequest(c, "Task name and description are required")
	case errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, "Invalid task status")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.BadRequest(c, "No tasks could be generated from the text")
	default:
		internalError(c, "task", err)
	}
}
