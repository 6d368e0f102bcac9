package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/repository"
)

// CascadeResult counts the dependent rows removed by a cascade.
type CascadeResult struct {
	Tasks         int64
	Notes         int64
	StatusChanges int64
	Members       int64
}

// CascadeEngine removes the rows that depend on a project or task before the
// parent row is deleted. It must run on the same Store as the parent delete.
type CascadeEngine struct{}

// ProjectDependents deletes the notes of every task of the project, then the
// tasks' status history, then the tasks, then the team. Notes go first so an
// interrupted run never leaves notes whose task is gone.
func (CascadeEngine) ProjectDependents(tx repository.Store, projectID uuid.UUID) (CascadeResult, error) {
	var result CascadeResult

	taskIDs, err := tx.Tasks().ListIDsByProject(projectID)
	if err != nil {
		return result, fmt.Errorf("failed to list project tasks: %w", err)
	}

	if result.Notes, err = tx.Notes().DeleteByTaskIDs(taskIDs); err != nil {
		return result, fmt.Errorf("failed to delete task notes: %w", err)
	}
	if result.StatusChanges, err = tx.Tasks().DeleteStatusChanges(taskIDs); err != nil {
		return result, fmt.Errorf("failed to delete task status history: %w", err)
	}
	if result.Tasks, err = tx.Tasks().DeleteByProject(projectID); err != nil {
		return result, fmt.Errorf("failed to delete project tasks: %w", err)
	}
	if result.Members, err = tx.Projects().DeleteMembers(projectID); err != nil {
		return result, fmt.Errorf("failed to delete project team: %w", err)
	}

	return result, nil
}

// TaskDependents deletes the task's notes and status history. Removing the
// task from its project's sequence is the caller's job.
func (CascadeEngine) TaskDependents(tx repository.Store, taskID uuid.UUID) (CascadeResult, error) {
	var result CascadeResult
	var err error

	ids := []uuid.UUID{taskID}
	if result.Notes, err = tx.Notes().DeleteByTaskIDs(ids); err != nil {
		return result, fmt.Errorf("failed to delete task notes: %w", err)
	}
	if result.StatusChanges, err = tx.Tasks().DeleteStatusChanges(ids); err != nil {
		return result, fmt.Errorf("failed to delete task status history: %w", err)
	}

	return result, nil
}
