package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMember is one entry of a project's team. The manager is never stored here.
type ProjectMember struct {
	ProjectID uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey;index"`
	JoinedAt  time.Time

	// Relations
	User User `gorm:"foreignKey:UserID"`
}
