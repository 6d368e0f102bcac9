package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uuid.UUID   `json:"id"`
	ProjectName string      `json:"project_name"`
	ClientName  string      `json:"client_name"`
	Description string      `json:"description"`
	ManagerID   uuid.UUID   `json:"manager"`
	Team        []uuid.UUID `json:"team"`
	TaskIDs     []uuid.UUID `json:"task_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Tasks       []TaskDTO   `json:"tasks,omitempty"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// TeamMemberDTO represents a team member in API responses
type TeamMemberDTO struct {
	UserDTO
	JoinedAt time.Time `json:"joined_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Team is empty unless loaded.
func ToProjectDTO(project models.Project) ProjectDTO {
	taskIDs := []uuid.UUID(project.TaskIDs)
	if taskIDs == nil {
		taskIDs = []uuid.UUID{}
	}

	return ProjectDTO{
		ID:          project.ID,
		ProjectName: project.ProjectName,
		ClientName:  project.ClientName,
		Description: project.Description,
		ManagerID:   project.ManagerID,
		Team:        project.TeamUserIDs(),
		TaskIDs:     taskIDs,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDetailDTO converts a project with its already converted tasks
func ToProjectDetailDTO(project models.Project, tasks []TaskDTO) ProjectDTO {
	dto := ToProjectDTO(project)
	dto.Tasks = tasks
	return dto
}

// ToTeamMemberDTO converts a team entry. User must be loaded.
func ToTeamMemberDTO(member models.ProjectMember) TeamMemberDTO {
	return TeamMemberDTO{
		UserDTO:  ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToTeamMemberDTOs converts a slice of team entries
func ToTeamMemberDTOs(members []models.ProjectMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToTeamMemberDTO(member)
	}
	return dtos
}
