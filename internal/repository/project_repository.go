package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create inserts a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(project).Error
	})
}

// FindByID finds a project by ID with its member tasks
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Tasks", preloadTasksInOrder).
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByName finds projects whose name contains the substring, ignoring case
func (r *GormProjectRepository) FindByName(ctx context.Context, name string) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.WithContext(ctx).
		Preload("Tasks", preloadTasksInOrder).
		Scopes(nameContains("projects", name)).
		Order("projects.created_at ASC, projects.id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// List retrieves projects with pagination
func (r *GormProjectRepository) List(ctx context.Context, filter ListFilter) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []models.Project{}
	if err := r.db.WithContext(ctx).
		Scopes(paginate(filter)).
		Preload("Tasks", preloadTasksInOrder).
		Order("projects.created_at DESC, projects.id DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Update applies changes to a project
func (r *GormProjectRepository) Update(ctx context.Context, id uuid.UUID, changes Changes) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Project{}).Where("id = ?", id).Updates(map[string]any(changes)).Error
	})
}

// Delete removes a project and every task in it in one transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}

func preloadTasksInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.created_at ASC, tasks.id ASC")
}
