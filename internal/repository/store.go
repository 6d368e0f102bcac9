package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *GormStore) Projects() ProjectRepository {
	return NewProjectRepository(s.db)
}

func (s *GormStore) Tasks() TaskRepository {
	return NewTaskRepository(s.db)
}

func (s *GormStore) Notes() NoteRepository {
	return NewNoteRepository(s.db)
}

// Transaction runs fn with a Store bound to one transaction
func (s *GormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// requireRow treats an update that touched no rows as a missing row unless
// the row still exists. MySQL reports unchanged rows as unaffected.
func requireRow(rowsAffected int64, query *gorm.DB, id uuid.UUID) error {
	if rowsAffected > 0 {
		return nil
	}
	var count int64
	if err := query.Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
