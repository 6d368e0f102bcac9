package services

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
)

// IsManager reports whether userID owns the project. Required for project
// update/delete, task create/update/delete and team changes.
func IsManager(userID uuid.UUID, project *models.Project) bool {
	return project.ManagerID == userID
}

// IsMember reports whether userID may read the project: the manager or anyone
// on the team. project.Team must be loaded.
func IsMember(userID uuid.UUID, project *models.Project) bool {
	if IsManager(userID, project) {
		return true
	}
	for _, member := range project.Team {
		if member.UserID == userID {
			return true
		}
	}
	return false
}
