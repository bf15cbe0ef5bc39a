package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

// Changes is a set of column assignments for a partial update. A nil value
// writes NULL.
type Changes map[string]any

// ListFilter holds pagination options for list queries
type ListFilter struct {
	Page     int
	PageSize int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by normalized e-mail
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves users with pagination
	List(ctx context.Context, filter ListFilter) ([]models.User, int64, error)

	// Update applies changes to a user
	Update(ctx context.Context, id uuid.UUID, changes Changes) error

	// Delete removes a user, deleting their projects (and the tasks in them)
	// and detaching the rest of their tasks
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	// FindByName finds tasks whose name contains the substring, ignoring case
	FindByName(ctx context.Context, name string) ([]models.Task, error)

	// List retrieves tasks with pagination
	List(ctx context.Context, filter ListFilter) ([]models.Task, int64, error)

	// Update applies changes to a task
	Update(ctx context.Context, id uuid.UUID, changes Changes) error

	// SetOwner points the task at another owner, or clears it when ownerID is nil
	SetOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) error

	// SetProject links the task to a project, or unlinks it when projectID is nil
	SetProject(ctx context.Context, id uuid.UUID, projectID *uuid.UUID) error

	// Delete removes a task
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create inserts a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID with its member tasks
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)

	// FindByName finds projects whose name contains the substring, ignoring case
	FindByName(ctx context.Context, name string) ([]models.Project, error)

	// List retrieves projects with pagination
	List(ctx context.Context, filter ListFilter) ([]models.Project, int64, error)

	// Update applies changes to a project
	Update(ctx context.Context, id uuid.UUID, changes Changes) error

	// Delete removes a project together with its member tasks
	Delete(ctx context.Context, id uuid.UUID) error
}
