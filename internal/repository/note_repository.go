package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a new note
func (r *GormNoteRepository) Create(note *models.Note) error {
	return r.db.Omit(clause.Associations).Create(note).Error
}

// FindByID finds a note by ID
func (r *GormNoteRepository) FindByID(id uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := r.db.Where("id = ?", id).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByIDs finds notes by ID with their creators
func (r *GormNoteRepository) FindByIDs(ids []uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	if len(ids) == 0 {
		return notes, nil
	}
	if err := r.db.Preload("CreatedBy").
		Where("id IN ?", ids).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ListByTask lists notes referencing the task, oldest first
func (r *GormNoteRepository) ListByTask(taskID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	if err := r.db.Preload("CreatedBy").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Delete deletes a note row
func (r *GormNoteRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Note{}).Error
}

// DeleteByTaskIDs bulk deletes notes referencing any of the tasks
func (r *GormNoteRepository) DeleteByTaskIDs(taskIDs []uuid.UUID) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	result := r.db.Where("task_id IN ?", taskIDs).Delete(&models.Note{})
	return result.RowsAffected, result.Error
}
