package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidProjectInput = errors.New("project name, client name and description are required")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	store   repository.Store
	cascade CascadeEngine
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

// ProjectInput carries the editable project fields.
type ProjectInput struct {
	ProjectName string
	ClientName  string
	Description string
}

func (in ProjectInput) normalize() (ProjectInput, error) {
	out := ProjectInput{
		ProjectName: strings.TrimSpace(in.ProjectName),
		ClientName:  strings.TrimSpace(in.ClientName),
		Description: strings.TrimSpace(in.Description),
	}
	if out.ProjectName == "" || out.ClientName == "" || out.Description == "" {
		return out, ErrInvalidProjectInput
	}
	return out, nil
}

// CreateProject creates a project managed by managerID.
func (s *ProjectService) CreateProject(managerID uuid.UUID, input ProjectInput) (*models.Project, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ProjectName: input.ProjectName,
		ClientName:  input.ClientName,
		Description: input.Description,
		ManagerID:   managerID,
	}

	if err := s.store.Projects().Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjectsForUser returns the projects the user manages or is on the team of.
func (s *ProjectService) ListProjectsForUser(userID uuid.UUID, params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.store.Projects().ListForUser(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject loads a project with its team, as needed by the access rules.
func (s *ProjectService) GetProject(id uuid.UUID) (*models.Project, error) {
	project, err := s.store.Projects().FindByID(id, "Team")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ProjectTasks returns the project's tasks in task-sequence order, each with
// its status history users and its note creators loaded.
func (s *ProjectService) ProjectTasks(project *models.Project) ([]TaskDetail, error) {
	tasks, err := s.store.Tasks().FindByIDs(project.TaskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load project tasks: %w", err)
	}
	tasks = orderTasks(project.TaskIDs, tasks)

	taskIDs := make([]uuid.UUID, len(tasks))
	var noteIDs []uuid.UUID
	for i, task := range tasks {
		taskIDs[i] = task.ID
		noteIDs = append(noteIDs, task.NoteIDs...)
	}

	history, err := s.store.Tasks().ListStatusChangesByTasks(taskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	historyByTask := make(map[uuid.UUID][]models.TaskStatusChange, len(tasks))
	for _, change := range history {
		historyByTask[change.TaskID] = append(historyByTask[change.TaskID], change)
	}

	notes, err := s.store.Notes().FindByIDs(noteIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	details := make([]TaskDetail, len(tasks))
	for i, task := range tasks {
		details[i] = TaskDetail{
			Task:    task,
			History: historyByTask[task.ID],
			Notes:   orderNotes(task.NoteIDs, notes),
		}
	}
	return details, nil
}

// UpdateProject replaces the editable fields of the project.
func (s *ProjectService) UpdateProject(project *models.Project, input ProjectInput) (*models.Project, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	project.ProjectName = input.ProjectName
	project.ClientName = input.ClientName
	project.Description = input.Description

	if err := s.store.Projects().Update(project); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject deletes the project together with its tasks, their notes and
// status history, and its team.
func (s *ProjectService) DeleteProject(project *models.Project) error {
	var removed CascadeResult
	err := s.store.Transaction(func(tx repository.Store) error {
		var err error
		if removed, err = s.cascade.ProjectDependents(tx, project.ID); err != nil {
			return err
		}
		return tx.Projects().Delete(project.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	logger.LogEvent("project_deleted", map[string]interface{}{
		"project_id":     project.ID.String(),
		"tasks":          removed.Tasks,
		"notes":          removed.Notes,
		"status_changes": removed.StatusChanges,
		"members":        removed.Members,
	})
	return nil
}

// orderTasks arranges tasks in the order of ids, skipping ids with no task.
func orderTasks(ids []uuid.UUID, tasks []models.Task) []models.Task {
	byID := make(map[uuid.UUID]models.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	ordered := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		if task, ok := byID[id]; ok {
			ordered = append(ordered, task)
		}
	}
	return ordered
}
