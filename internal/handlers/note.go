package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// CreateNote adds a note by the caller to the resolved task
func (h *NoteHandler) CreateNote(c *gin.Context) {
	type CreateNoteRequest struct {
		Content string `json:"content" binding:"required,max=10000"`
	}

	var req CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	scope := middleware.Scope(c)
	note, err := h.noteService.CreateNote(scope.Task, scope.User.ID, req.Content)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note))
}

// ListNotes returns the notes of the resolved task
func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.noteService.ListNotes(middleware.Scope(c).Task)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": dto.ToNoteDTOs(notes),
	})
}

// DeleteNote deletes the resolved note; only its creator may do so
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	scope := middleware.Scope(c)
	if err := h.noteService.DeleteNote(scope.Task, scope.Note, scope.User.ID); err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyNoteContent):
		apierrors.BadRequest(c, "Note content is required")
	case errors.Is(err, services.ErrNotNoteCreator):
		apierrors.RespondAuthFailure(c, apierrors.RejectAction, "Note not found")
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, "Note not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		internalError(c, "note", err)
	}
}
