package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrEmptyNoteContent = errors.New("note content is required")
	ErrNotNoteCreator   = errors.New("only the note creator can delete it")
)

// NoteService handles notes attached to tasks.
type NoteService struct {
	store repository.Store
}

// NewNoteService creates a new NoteService.
func NewNoteService(store repository.Store) *NoteService {
	return &NoteService{store: store}
}

// CreateNote stores a note by authorID and appends it to the task's note
// sequence in the same transaction.
func (s *NoteService) CreateNote(task *models.Task, authorID uuid.UUID, content string) (*models.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyNoteContent
	}

	note := &models.Note{
		Content:     content,
		CreatedByID: authorID,
		TaskID:      task.ID,
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Notes().Create(note); err != nil {
			return err
		}

		current, err := tx.Tasks().FindByID(task.ID)
		if err != nil {
			return err
		}
		current.AppendNote(note.ID)
		if err := tx.Tasks().Update(current); err != nil {
			return err
		}
		task.NoteIDs = current.NoteIDs
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	if author, err := s.store.Users().FindByID(authorID); err == nil {
		note.CreatedBy = *author
	}
	return note, nil
}

// ListNotes returns the task's notes, oldest first, with creators loaded.
func (s *NoteService) ListNotes(task *models.Task) ([]models.Note, error) {
	notes, err := s.store.Notes().ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// GetNote finds a note by ID.
func (s *NoteService) GetNote(id uuid.UUID) (*models.Note, error) {
	note, err := s.store.Notes().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note and drops it from the task's note sequence. Only
// the creator may delete a note.
func (s *NoteService) DeleteNote(task *models.Task, note *models.Note, actorID uuid.UUID) error {
	if note.CreatedByID != actorID {
		return ErrNotNoteCreator
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Notes().Delete(note.ID); err != nil {
			return err
		}

		current, err := tx.Tasks().FindByID(task.ID)
		if err != nil {
			return err
		}
		current.RemoveNote(note.ID)
		if err := tx.Tasks().Update(current); err != nil {
			return err
		}
		task.NoteIDs = current.NoteIDs
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
