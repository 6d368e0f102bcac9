package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrInvalidTaskInput       = errors.New("task name and description are required")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	store     repository.Store
	cascade   CascadeEngine
	aiService *AIService
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store, aiService *AIService) *TaskService {
	return &TaskService{
		store:     store,
		aiService: aiService,
	}
}

// TaskInput represents the editable task fields
type TaskInput struct {
	Name        string
	Description string
}

func (in TaskInput) normalize() (TaskInput, error) {
	out := TaskInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if out.Name == "" || out.Description == "" {
		return out, ErrInvalidTaskInput
	}
	return out, nil
}

// TaskDetail is a task with its status history and notes loaded
type TaskDetail struct {
	Task    models.Task
	History []models.TaskStatusChange
	Notes   []models.Note
}

// CreateTask creates a task in the project and appends it to the project's
// task sequence in the same transaction.
func (s *TaskService) CreateTask(project *models.Project, input TaskInput) (*models.Task, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		ProjectID:   project.ID,
		Status:      models.TaskStatusPending,
	}

	err = s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Tasks().Create(task); err != nil {
			return err
		}

		current, err := tx.Projects().FindByID(project.ID)
		if err != nil {
			return err
		}
		current.AppendTask(task.ID)
		if err := tx.Projects().Update(current); err != nil {
			return err
		}
		project.TaskIDs = current.TaskIDs
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListProjectTasks returns every task referencing the project
func (s *TaskService) ListProjectTasks(project *models.Project) ([]models.Task, error) {
	tasks, err := s.store.Tasks().ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask finds a task by ID
func (s *TaskService) GetTask(id uuid.UUID) (*models.Task, error) {
	task, err := s.store.Tasks().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// GetTaskDetail loads the status history (with users) and the notes (with
// creators, in note-sequence order) of the task
func (s *TaskService) GetTaskDetail(task *models.Task) (*TaskDetail, error) {
	history, err := s.store.Tasks().ListStatusChanges(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].ID < history[j].ID })

	notes, err := s.store.Notes().FindByIDs(task.NoteIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	return &TaskDetail{
		Task:    *task,
		History: history,
		Notes:   orderNotes(task.NoteIDs, notes),
	}, nil
}

// UpdateTask replaces the task name and description
func (s *TaskService) UpdateTask(task *models.Task, input TaskInput) (*models.Task, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	task.Name = input.Name
	task.Description = input.Description

	if err := s.store.Tasks().Update(task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask deletes the task and its notes and history, and removes it from
// the project's task sequence, all in one transaction
func (s *TaskService) DeleteTask(project *models.Project, task *models.Task) error {
	err := s.store.Transaction(func(tx repository.Store) error {
		if _, err := s.cascade.TaskDependents(tx, task.ID); err != nil {
			return err
		}

		current, err := tx.Projects().FindByID(project.ID)
		if err != nil {
			return err
		}
		current.RemoveTask(task.ID)
		if err := tx.Projects().Update(current); err != nil {
			return err
		}
		project.TaskIDs = current.TaskIDs

		return tx.Tasks().Delete(task.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// UpdateStatus sets the task status and appends {actor, status} to its
// history. Earlier history entries are never touched.
func (s *TaskService) UpdateStatus(task *models.Task, status models.TaskStatus, actorID uuid.UUID) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	change := task.ApplyStatus(status, actorID)

	err := s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Tasks().Update(task); err != nil {
			return err
		}
		return tx.Tasks().AppendStatusChange(&change)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}

// GenerateTaskDrafts uses AI to suggest tasks for the project from free text.
// Nothing is persisted.
func (s *TaskService) GenerateTaskDrafts(ctx context.Context, project *models.Project, text string) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, project.ProjectName, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		aiTasks = aiTasks[:constants.MaxAIGeneratedTasks]
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	for _, aiTask := range aiTasks {
		aiTask.Name = strings.TrimSpace(aiTask.Name)
		aiTask.Description = strings.TrimSpace(aiTask.Description)
		if aiTask.Name == "" {
			continue
		}
		if aiTask.Description == "" {
			aiTask.Description = aiTask.Name
		}
		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func orderNotes(ids []uuid.UUID, notes []models.Note) []models.Note {
	byID := make(map[uuid.UUID]models.Note, len(notes))
	for _, note := range notes {
		byID[note.ID] = note
	}

	ordered := make([]models.Note, 0, len(ids))
	for _, id := range ids {
		if note, ok := byID[id]; ok {
			ordered = append(ordered, note)
		}
	}
	return ordered
}
