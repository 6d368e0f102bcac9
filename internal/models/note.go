package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Content     string    `gorm:"type:text;not null"`
	CreatedByID uuid.UUID `gorm:"type:char(36);not null"`
	TaskID      uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relations
	CreatedBy User `gorm:"foreignKey:CreatedByID"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}

func (n *Note) BelongsTo(taskID uuid.UUID) bool {
	return n.TaskID == taskID
}
