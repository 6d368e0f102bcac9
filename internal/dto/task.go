package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// StatusChangeDTO is one entry of a task's completed_by history
type StatusChangeDTO struct {
	User      *UserDTO          `json:"user"`
	Status    models.TaskStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	TaskID      uuid.UUID `json:"task"`
	CreatedBy   UserDTO   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ProjectID   uuid.UUID         `json:"project"`
	Status      models.TaskStatus `json:"status"`
	NoteIDs     []uuid.UUID       `json:"note_ids"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	CompletedBy []StatusChangeDTO `json:"completed_by,omitempty"`
	Notes       []NoteDTO         `json:"notes,omitempty"`
}

// GeneratedTaskDTO is an AI task draft; drafts are not stored
type GeneratedTaskDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// ToStatusChangeDTO converts a history entry. The user is null when it no longer exists.
func ToStatusChangeDTO(change models.TaskStatusChange) StatusChangeDTO {
	dto := StatusChangeDTO{
		Status:    change.Status,
		CreatedAt: change.CreatedAt,
	}
	if change.User != nil {
		user := ToUserDTO(*change.User)
		dto.User = &user
	}
	return dto
}

// ToNoteDTO converts a Note model to NoteDTO. CreatedBy must be loaded.
func ToNoteDTO(note models.Note) NoteDTO {
	html, err := utils.RenderMarkdown(note.Content)
	if err != nil {
		html = ""
	}

	return NoteDTO{
		ID:          note.ID,
		Content:     note.Content,
		ContentHTML: html,
		TaskID:      note.TaskID,
		CreatedBy:   ToUserDTO(note.CreatedBy),
		CreatedAt:   note.CreatedAt,
	}
}

// ToNoteDTOs converts a slice of notes
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i, note := range notes {
		dtos[i] = ToNoteDTO(note)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	noteIDs := []uuid.UUID(task.NoteIDs)
	if noteIDs == nil {
		noteIDs = []uuid.UUID{}
	}

	return TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		Status:      task.Status,
		NoteIDs:     noteIDs,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskDetailDTO converts a task with its history and notes populated
func ToTaskDetailDTO(task models.Task, history []models.TaskStatusChange, notes []models.Note) TaskDTO {
	dto := ToTaskDTO(task)

	dto.CompletedBy = make([]StatusChangeDTO, len(history))
	for i, change := range history {
		dto.CompletedBy[i] = ToStatusChangeDTO(change)
	}
	dto.Notes = ToNoteDTOs(notes)
	return dto
}
