package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

type compositeIndex struct {
	model   interface{}
	table   string
	name    string
	columns string
}

// AddIndexes adds lookup indexes that the struct tags do not declare
func AddIndexes(db *gorm.DB) error {
	indexes := []compositeIndex{
		// Status history is always read per task in insertion order
		{&models.TaskStatusChange{}, "task_status_changes", "idx_status_changes_task_order", "task_id, id"},
		// Notes are listed per task by creation time
		{&models.Note{}, "notes", "idx_notes_task_created", "task_id, created_at"},
		// Project listing filters on manager and sorts by creation time
		{&models.Project{}, "projects", "idx_projects_manager_created", "manager_id, created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			logrus.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithFields(logrus.Fields{
			"index": idx.name,
			"table": idx.table,
		}).Info("Created index")
	}

	return nil
}

// MigrateDatabase runs the migrations that AutoMigrate does not cover
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
