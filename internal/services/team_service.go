package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlreadyTeamMember     = errors.New("user is already on the team")
	ErrNotTeamMember         = errors.New("user is not on the team")
	ErrManagerCannotJoinTeam = errors.New("the project manager cannot be added to the team")
)

// TeamService manages the team of a project.
type TeamService struct {
	store repository.Store
}

// NewTeamService creates a new TeamService.
func NewTeamService(store repository.Store) *TeamService {
	return &TeamService{store: store}
}

// FindUserByEmail looks up a user by email so a manager can add them to a team.
func (s *TeamService) FindUserByEmail(email string) (*models.User, error) {
	user, err := s.store.Users().FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListTeam returns the team members of the project with users loaded.
func (s *TeamService) ListTeam(project *models.Project) ([]models.ProjectMember, error) {
	members, err := s.store.Projects().ListMembers(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}
	return members, nil
}

// AddMember puts userID on the project team. A user appears at most once and
// the manager is never on their own team.
func (s *TeamService) AddMember(project *models.Project, userID uuid.UUID) (*models.User, error) {
	user, err := s.store.Users().FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if IsManager(userID, project) {
		return nil, ErrManagerCannotJoinTeam
	}

	if _, err := s.store.Projects().FindMember(project.ID, userID); err == nil {
		return nil, ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check team member: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}
	if err := s.store.Projects().AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	member.User = *user
	project.Team = append(project.Team, *member)
	return user, nil
}

// RemoveMember takes userID off the project team.
func (s *TeamService) RemoveMember(project *models.Project, userID uuid.UUID) error {
	if _, err := s.store.Projects().FindMember(project.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotTeamMember
		}
		return fmt.Errorf("failed to check team member: %w", err)
	}

	if err := s.store.Projects().RemoveMember(project.ID, userID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	team := project.Team[:0]
	for _, member := range project.Team {
		if member.UserID != userID {
			team = append(team, member)
		}
	}
	project.Team = team
	return nil
}
