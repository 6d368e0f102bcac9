package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// Store groups the repositories that share one database handle. Inside
// Transaction every repository of tx runs on the same transaction.
type Store interface {
	Users() UserRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
	Notes() NoteRepository

	// Transaction runs fn in a single database transaction. A returned error rolls back.
	Transaction(fn func(tx Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by exact email match
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Project, error)

	// ListForUser lists projects the user manages or is a team member of
	ListForUser(userID uuid.UUID, params utils.PaginationParams) ([]models.Project, int64, error)

	// Update saves every column of an existing project, last write wins.
	// A deleted project yields gorm.ErrRecordNotFound.
	Update(project *models.Project) error

	// Delete deletes one project row
	Delete(id uuid.UUID) error

	// AddMember adds a user to the project team; gorm.ErrDuplicatedKey if already present
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a user from the project team
	RemoveMember(projectID, userID uuid.UUID) error

	// FindMember finds a specific team member
	FindMember(projectID, userID uuid.UUID) (*models.ProjectMember, error)

	// ListMembers lists the team with users loaded, in join order
	ListMembers(projectID uuid.UUID) ([]models.ProjectMember, error)

	// DeleteMembers removes the whole team of a project
	DeleteMembers(projectID uuid.UUID) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	// FindByIDs finds the tasks with the given IDs, in no particular order
	FindByIDs(ids []uuid.UUID) ([]models.Task, error)

	// ListByProject lists the tasks referencing a project
	ListByProject(projectID uuid.UUID) ([]models.Task, error)

	// ListIDsByProject lists the IDs of tasks referencing a project
	ListIDsByProject(projectID uuid.UUID) ([]uuid.UUID, error)

	// Update saves every column of an existing task, last write wins.
	// A deleted task yields gorm.ErrRecordNotFound.
	Update(task *models.Task) error

	// Delete deletes one task row
	Delete(id uuid.UUID) error

	// DeleteByProject bulk deletes the tasks referencing a project
	DeleteByProject(projectID uuid.UUID) (int64, error)

	// AppendStatusChange inserts one status history entry
	AppendStatusChange(change *models.TaskStatusChange) error

	// ListStatusChanges lists a task's status history, oldest first, with users loaded
	ListStatusChanges(taskID uuid.UUID) ([]models.TaskStatusChange, error)

	// ListStatusChangesByTasks lists the history of several tasks, oldest first, with users loaded
	ListStatusChangesByTasks(taskIDs []uuid.UUID) ([]models.TaskStatusChange, error)

	// DeleteStatusChanges removes the status history of the given tasks
	DeleteStatusChanges(taskIDs []uuid.UUID) (int64, error)
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create creates a new note
	Create(note *models.Note) error

	// FindByID finds a note by ID
	FindByID(id uuid.UUID) (*models.Note, error)

	// FindByIDs finds the notes with the given IDs with creators loaded
	FindByIDs(ids []uuid.UUID) ([]models.Note, error)

	// ListByTask lists the notes referencing a task with creators loaded
	ListByTask(taskID uuid.UUID) ([]models.Note, error)

	// Delete deletes one note row
	Delete(id uuid.UUID) error

	// DeleteByTaskIDs bulk deletes the notes referencing any of the tasks
	DeleteByTaskIDs(taskIDs []uuid.UUID) (int64, error)
}
