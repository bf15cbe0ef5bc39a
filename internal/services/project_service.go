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
	ErrProjectNotFound      = apierrors.New(apierrors.DomainProject, apierrors.CodeNotFound, "Project not found")
	ErrProjectNameRequired  = apierrors.New(apierrors.DomainProject, apierrors.CodeBadRequest, "Project name is required")
	ErrProjectNameTooLong   = apierrors.New(apierrors.DomainProject, apierrors.CodeBadRequest, fmt.Sprintf("Project name must be at most %d characters", constants.MaxNameLength))
	ErrProjectDescRequired  = apierrors.New(apierrors.DomainProject, apierrors.CodeBadRequest, "Project description is required")
	ErrTaskAlreadyInProject = apierrors.New(apierrors.DomainProject, apierrors.CodeConflict, "Task already belongs to this project")
	ErrTaskNotInProject     = apierrors.New(apierrors.DomainProject, apierrors.CodeConflict, "Task doesn't belong to this project")
	ErrProjectOwnerMismatch = apierrors.New(apierrors.DomainProject, apierrors.CodeForbidden, "Project and task belong to different owners")
)

// ProjectService owns the project lifecycle and task membership.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	users       *UserService
	tasks       *TaskService
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, users *UserService, tasks *TaskService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		users:       users,
		tasks:       tasks,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
	OwnerID     uuid.UUID
}

// UpdateProjectInput is a partial update over name and description. The
// owner cannot be changed.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// Get returns a project with its member tasks
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound.With(apierrors.Context{"id": id.String()})
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetByName returns projects whose name contains name, ignoring case
func (s *ProjectService) GetByName(ctx context.Context, name string) ([]models.Project, error) {
	projects, err := s.projectRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	return projects, nil
}

// List returns a page of projects and the total count
func (s *ProjectService) List(ctx context.Context, page, pageSize int) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, repository.ListFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Create creates an empty project for an existing owner
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	name, err := validateProjectName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Description == nil {
		return nil, ErrProjectDescRequired.With(nil)
	}

	if _, err := s.users.Get(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.Get(ctx, project.ID)
}

// Update applies the fields present in input. An input with no field set
// performs no write.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := repository.Changes{}
	if input.Name != nil {
		name, err := validateProjectName(*input.Name)
		if err != nil {
			return nil, err
		}
		changes["name"] = name
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}

	if len(changes) == 0 {
		return project, nil
	}

	if err := s.projectRepo.Update(ctx, id, changes); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.Get(ctx, id)
}

// AddTask links a task to a project. Both must exist; the task must not be
// in this project already and must share the project's owner.
func (s *ProjectService) AddTask(ctx context.Context, taskID, projectID uuid.UUID) (*models.Project, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if task.ProjectID != nil && *task.ProjectID == project.ID {
		return nil, ErrTaskAlreadyInProject.With(apierrors.Context{
			"project_id": projectID.String(),
			"task_id":    taskID.String(),
		})
	}

	if task.OwnerID == nil || *task.OwnerID != project.OwnerID {
		return nil, ErrProjectOwnerMismatch.With(apierrors.Context{
			"project_owner_id": project.OwnerID.String(),
			"task_owner_id":    idString(task.OwnerID),
		})
	}

	if err := s.taskRepo.SetProject(ctx, taskID, &project.ID); err != nil {
		return nil, fmt.Errorf("failed to add task to project: %w", err)
	}

	return s.Get(ctx, projectID)
}

// RemoveTask unlinks a task from the project it belongs to.
func (s *ProjectService) RemoveTask(ctx context.Context, taskID, projectID uuid.UUID) (*models.Project, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if task.ProjectID == nil || *task.ProjectID != project.ID {
		return nil, ErrTaskNotInProject.With(apierrors.Context{
			"project_id": projectID.String(),
			"task_id":    taskID.String(),
		})
	}

	if err := s.taskRepo.SetProject(ctx, taskID, nil); err != nil {
		return nil, fmt.Errorf("failed to remove task from project: %w", err)
	}

	return s.Get(ctx, projectID)
}

// Remove deletes a project and every task in it.
func (s *ProjectService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func validateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrProjectNameRequired.With(nil)
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return "", ErrProjectNameTooLong.With(nil)
	}
	return name, nil
}
