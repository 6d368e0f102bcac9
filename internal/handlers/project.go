package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

type projectRequest struct {
	ProjectName string `json:"project_name" binding:"required,max=255"`
	ClientName  string `json:"client_name" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=10000"`
}

func (r projectRequest) input() services.ProjectInput {
	return services.ProjectInput{
		ProjectName: r.ProjectName,
		ClientName:  r.ClientName,
		Description: r.Description,
	}
}

// CreateProject creates a project managed by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(middleware.Scope(c).User.ID, req.input())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the projects the caller manages or is on the team of
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjectsForUser(middleware.Scope(c).User.ID, params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	dtos := make([]dto.ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = dto.ToProjectDTO(project)
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects: dtos,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns the resolved project with its tasks, their status
// history and their notes populated
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project := middleware.Scope(c).Project

	details, err := h.projectService.ProjectTasks(project)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	tasks := make([]dto.TaskDTO, len(details))
	for i, detail := range details {
		tasks[i] = dto.ToTaskDetailDTO(detail.Task, detail.History, detail.Notes)
	}
	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*project, tasks))
}

// UpdateProject replaces project_name, client_name and description
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(middleware.Scope(c).Project, req.input())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes the project and everything that depends on it
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(middleware.Scope(c).Project); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProjectInput):
		apierrors.BadRequest(c, "Project name, client name and description are required")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	default:
		internalError(c, "project", err)
	}
}
