package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = apierrors.New(apierrors.DomainTask, apierrors.CodeNotFound, "Task not found")
	ErrTaskNameRequired  = apierrors.New(apierrors.DomainTask, apierrors.CodeBadRequest, "Task name is required")
	ErrTaskNameTooLong   = apierrors.New(apierrors.DomainTask, apierrors.CodeBadRequest, fmt.Sprintf("Task name must be at most %d characters", constants.MaxNameLength))
	ErrTaskOwnerMismatch = apierrors.New(apierrors.DomainTask, apierrors.CodeForbidden, "Task owner must match the owner of its project")
)

// TaskService owns the task lifecycle, ownership and deadline rules.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	users       *UserService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, users *UserService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		users:       users,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description *string
	Deadline    *models.Date
	OwnerID     uuid.UUID
}

// UpdateTaskInput represents input for updating a task.
//
// The deadline is driven by SetDeadline: nil leaves it alone whatever
// Deadline holds, true sets it to Deadline (nil clears it), false clears it.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Complete    *bool
	SetDeadline *bool
	Deadline    *models.Date
}

// Get returns a task by id
func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound.With(apierrors.Context{"id": id.String()})
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// GetByName returns tasks whose name contains name, ignoring case. No match
// is an empty slice, not an error.
func (s *TaskService) GetByName(ctx context.Context, name string) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// List returns a page of tasks and the total count
func (s *TaskService) List(ctx context.Context, page, pageSize int) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(ctx, repository.ListFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Create creates a task for an existing owner
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	name, err := validateTaskName(input.Name)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.Get(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	ownerID := input.OwnerID
	task := &models.Task{
		Name:        name,
		Description: input.Description,
		Deadline:    input.Deadline,
		Complete:    false,
		OwnerID:     &ownerID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.Get(ctx, task.ID)
}

// Update applies the fields present in input. An input with no field set
// performs no write, so updated_at stays as it was.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := repository.Changes{}
	if input.Name != nil {
		name, err := validateTaskName(*input.Name)
		if err != nil {
			return nil, err
		}
		changes["name"] = name
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Complete != nil {
		changes["complete"] = *input.Complete
	}
	if input.SetDeadline != nil {
		if *input.SetDeadline && input.Deadline != nil {
			changes["deadline"] = *input.Deadline
		} else {
			changes["deadline"] = nil
		}
	}

	if len(changes) == 0 {
		return task, nil
	}

	if err := s.taskRepo.Update(ctx, id, changes); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.Get(ctx, id)
}

// AssignOwner hands the task to ownerID, or leaves it without an owner when
// ownerID is nil. A task inside a project can only be owned by the project
// owner.
func (s *TaskService) AssignOwner(ctx context.Context, taskID uuid.UUID, ownerID *uuid.UUID) (*models.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if ownerID != nil {
		if _, err := s.users.Get(ctx, *ownerID); err != nil {
			return nil, err
		}
	}

	if task.ProjectID != nil {
		project, err := s.projectRepo.FindByID(ctx, *task.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to find project of task: %w", err)
		}
		if ownerID == nil || *ownerID != project.OwnerID {
			return nil, ErrTaskOwnerMismatch.With(apierrors.Context{
				"task_id":          taskID.String(),
				"project_id":       project.ID.String(),
				"project_owner_id": project.OwnerID.String(),
				"owner_id":         idString(ownerID),
			})
		}
	}

	if err := s.taskRepo.SetOwner(ctx, taskID, ownerID); err != nil {
		return nil, fmt.Errorf("failed to assign task owner: %w", err)
	}

	return s.Get(ctx, taskID)
}

// Remove deletes a task
func (s *TaskService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func validateTaskName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrTaskNameRequired.With(nil)
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return "", ErrTaskNameTooLong.With(nil)
	}
	return name, nil
}

// idString renders an optional id for error context; nil becomes nil.
func idString(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
