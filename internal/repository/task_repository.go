package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uuid.UUID, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDs finds tasks by ID
func (r *GormTaskRepository) FindByIDs(ids []uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByProject lists tasks referencing the project
func (r *GormTaskRepository) ListByProject(projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListIDsByProject lists IDs of tasks referencing the project
func (r *GormTaskRepository) ListIDsByProject(projectID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Update writes every column of an existing task. A task deleted since it
// was loaded yields gorm.ErrRecordNotFound and is not recreated.
func (r *GormTaskRepository) Update(task *models.Task) error {
	result := r.db.Model(task).Select("*").Omit(clause.Associations).Updates(task)
	if result.Error != nil {
		return result.Error
	}
	return requireRow(result.RowsAffected, r.db.Model(&models.Task{}), task.ID)
}

// Delete deletes a task row. Dependent rows are handled by the cascade engine.
func (r *GormTaskRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Task{}).Error
}

// DeleteByProject bulk deletes tasks referencing the project
func (r *GormTaskRepository) DeleteByProject(projectID uuid.UUID) (int64, error) {
	result := r.db.Where("project_id = ?", projectID).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}

// AppendStatusChange inserts a status history entry
func (r *GormTaskRepository) AppendStatusChange(change *models.TaskStatusChange) error {
	return r.db.Omit(clause.Associations).Create(change).Error
}

// ListStatusChanges lists a task's status history in insertion order
func (r *GormTaskRepository) ListStatusChanges(taskID uuid.UUID) ([]models.TaskStatusChange, error) {
	var changes []models.TaskStatusChange
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// ListStatusChangesByTasks lists the status history of several tasks in insertion order
func (r *GormTaskRepository) ListStatusChangesByTasks(taskIDs []uuid.UUID) ([]models.TaskStatusChange, error) {
	var changes []models.TaskStatusChange
	if len(taskIDs) == 0 {
		return changes, nil
	}
	if err := r.db.Preload("User").
		Where("task_id IN ?", taskIDs).
		Order("id ASC").
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// DeleteStatusChanges removes the status history of the tasks
func (r *GormTaskRepository) DeleteStatusChanges(taskIDs []uuid.UUID) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	result := r.db.Where("task_id IN ?", taskIDs).Delete(&models.TaskStatusChange{})
	return result.RowsAffected, result.Error
}
