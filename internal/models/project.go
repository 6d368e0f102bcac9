package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	ProjectName string    `gorm:"type:varchar(255);not null"`
	ClientName  string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	ManagerID   uuid.UUID `gorm:"type:char(36);not null;index"`
	// TaskIDs is the ordered task sequence. Services keep it in step with Task.ProjectID.
	TaskIDs   datatypes.JSONSlice[uuid.UUID]
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Manager User            `gorm:"foreignKey:ManagerID"`
	Team    []ProjectMember `gorm:"foreignKey:ProjectID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// AppendTask adds taskID to the end of the task sequence.
func (p *Project) AppendTask(taskID uuid.UUID) {
	p.TaskIDs = append(p.TaskIDs, taskID)
}

// RemoveTask drops every occurrence of taskID from the task sequence.
func (p *Project) RemoveTask(taskID uuid.UUID) {
	p.TaskIDs = removeID(p.TaskIDs, taskID)
}

// TeamUserIDs returns the ids of the loaded team members.
func (p *Project) TeamUserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Team))
	for _, member := range p.Team {
		ids = append(ids, member.UserID)
	}
	return ids
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	result := make([]uuid.UUID, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			result = append(result, existing)
		}
	}
	return result
}
