package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit(clause.Associations).Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uuid.UUID, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser lists projects where the user is manager or on the team
func (r *GormProjectRepository) ListForUser(userID uuid.UUID, params utils.PaginationParams) ([]models.Project, int64, error) {
	teamSubQuery := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	query := r.db.Model(&models.Project{}).
		Where("manager_id = ? OR id IN (?)", userID, teamSubQuery).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := query.Scopes(database.NewestFirst, database.Paginate(params)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update writes every column of an existing project. A project deleted
// since it was loaded yields gorm.ErrRecordNotFound and is not recreated.
func (r *GormProjectRepository) Update(project *models.Project) error {
	result := r.db.Model(project).Select("*").Omit(clause.Associations).Updates(project)
	if result.Error != nil {
		return result.Error
	}
	return requireRow(result.RowsAffected, r.db.Model(&models.Project{}), project.ID)
}

// Delete deletes a project row. Dependent rows are handled by the cascade engine.
func (r *GormProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Project{}).Error
}

// AddMember adds a member to the project team. An existing membership yields
// gorm.ErrDuplicatedKey.
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	result := r.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrDuplicatedKey
	}
	return nil
}

// RemoveMember removes a member from the project team
func (r *GormProjectRepository) RemoveMember(projectID, userID uuid.UUID) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// FindMember finds a specific team member
func (r *GormProjectRepository) FindMember(projectID, userID uuid.UUID) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a project team
func (r *GormProjectRepository) ListMembers(projectID uuid.UUID) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// DeleteMembers removes every team member of a project
func (r *GormProjectRepository) DeleteMembers(projectID uuid.UUID) (int64, error) {
	result := r.db.Where("project_id = ?", projectID).Delete(&models.ProjectMember{})
	return result.RowsAffected, result.Error
}
