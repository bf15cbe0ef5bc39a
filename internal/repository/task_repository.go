package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByName finds tasks whose name contains the substring, ignoring case
func (r *GormTaskRepository) FindByName(ctx context.Context, name string) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Scopes(nameContains("tasks", name)).
		Order("tasks.created_at ASC, tasks.id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks with pagination
func (r *GormTaskRepository) List(ctx context.Context, filter ListFilter) ([]models.Task, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Scopes(paginate(filter)).
		Order("tasks.created_at DESC, tasks.id DESC").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update applies changes to a task
func (r *GormTaskRepository) Update(ctx context.Context, id uuid.UUID, changes Changes) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]any(changes)).Error
	})
}

// SetOwner points the task at another owner, or clears it when ownerID is nil
func (r *GormTaskRepository) SetOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) error {
	return r.Update(ctx, id, Changes{"owner_id": nullableID(ownerID)})
}

// SetProject links the task to a project, or unlinks it when projectID is nil
func (r *GormTaskRepository) SetProject(ctx context.Context, id uuid.UUID, projectID *uuid.UUID) error {
	return r.Update(ctx, id, Changes{"project_id": nullableID(projectID)})
}

// Delete removes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&models.Task{}).Error
	})
}

func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
