package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatusChange is one entry of a task's append-only status history.
// Rows are only ever inserted; the auto-increment ID gives the order.
type TaskStatusChange struct {
	ID        uint64     `gorm:"primarykey"`
	TaskID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	UserID    *uuid.UUID `gorm:"type:char(36)"`
	Status    TaskStatus `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}
