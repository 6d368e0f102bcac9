package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/validation"
)

const (
	msgProjectNotFound = "Project not found"
	msgTaskNotFound    = "Task not found"
	msgNoteNotFound    = "Note not found"
)

// ResolveProject loads :projectId into the request scope. Callers that are
// neither manager nor team member get the same answer as for a missing project.
// Must run after RequireAuth.
func ResolveProject(projectService *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := validation.ParseID(c.Param(constants.ParamProjectID))
		if !ok {
			apierrors.BadRequest(c, "Invalid project ID")
			return
		}

		project, err := projectService.GetProject(projectID)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				apierrors.NotFound(c, msgProjectNotFound)
				return
			}
			logger.LogError("resolve_project", err, map[string]interface{}{"project_id": projectID.String()})
			apierrors.InternalError(c, "")
			return
		}

		scope := Scope(c)
		if !services.IsMember(scope.User.ID, project) {
			apierrors.RespondAuthFailure(c, apierrors.HideExistence, msgProjectNotFound)
			return
		}

		scope.Project = project
		c.Next()
	}
}

// ResolveTask loads :taskId into the request scope and checks that it belongs
// to the resolved project. Must run after ResolveProject.
func ResolveTask(taskService *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := Scope(c)
		if scope.Project == nil {
			apierrors.InternalError(c, "")
			return
		}

		taskID, ok := validation.ParseID(c.Param(constants.ParamTaskID))
		if !ok {
			apierrors.BadRequest(c, "Invalid task ID")
			return
		}

		task, err := taskService.GetTask(taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, msgTaskNotFound)
				return
			}
			logger.LogError("resolve_task", err, map[string]interface{}{"task_id": taskID.String()})
			apierrors.InternalError(c, "")
			return
		}

		if !task.BelongsTo(scope.Project.ID) {
			apierrors.InvalidAction(c, "")
			return
		}

		scope.Task = task
		c.Next()
	}
}

// ResolveNote loads :noteId into the request scope and checks that it belongs
// to the resolved task. Must run after ResolveTask.
func ResolveNote(noteService *services.NoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := Scope(c)
		if scope.Task == nil {
			apierrors.InternalError(c, "")
			return
		}

		noteID, ok := validation.ParseID(c.Param(constants.ParamNoteID))
		if !ok {
			apierrors.BadRequest(c, "Invalid note ID")
			return
		}

		note, err := noteService.GetNote(noteID)
		if err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				apierrors.NotFound(c, msgNoteNotFound)
				return
			}
			logger.LogError("resolve_note", err, map[string]interface{}{"note_id": noteID.String()})
			apierrors.InternalError(c, "")
			return
		}

		if !note.BelongsTo(scope.Task.ID) {
			apierrors.InvalidAction(c, "")
			return
		}

		scope.Note = note
		c.Next()
	}
}
