package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusOnHold      TaskStatus = "onHold"
	TaskStatusInProgress  TaskStatus = "inProgress"
	TaskStatusUnderReview TaskStatus = "underReview"
	TaskStatusCompleted   TaskStatus = "completed"
)

// TaskStatuses lists every status. Any status may follow any other.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusOnHold,
	TaskStatusInProgress,
	TaskStatusUnderReview,
	TaskStatusCompleted,
}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text;not null"`
	ProjectID   uuid.UUID  `gorm:"type:char(36);not null;index"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	// NoteIDs is the ordered note sequence. Services keep it in step with Note.TaskID.
	NoteIDs   datatypes.JSONSlice[uuid.UUID]
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	CompletedBy []TaskStatusChange `gorm:"foreignKey:TaskID"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return nil
}

// BelongsTo reports whether the task references projectID.
func (t *Task) BelongsTo(projectID uuid.UUID) bool {
	return t.ProjectID == projectID
}

func (t *Task) AppendNote(noteID uuid.UUID) {
	t.NoteIDs = append(t.NoteIDs, noteID)
}

func (t *Task) RemoveNote(noteID uuid.UUID) {
	t.NoteIDs = removeID(t.NoteIDs, noteID)
}

// ApplyStatus sets the task status and returns the history entry recording who
// set it. Any status may follow any other, completed included.
func (t *Task) ApplyStatus(status TaskStatus, userID uuid.UUID) TaskStatusChange {
	t.Status = status
	actor := userID
	return TaskStatusChange{
		TaskID: t.ID,
		UserID: &actor,
		Status: status,
	}
}
