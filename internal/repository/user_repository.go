package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(user).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized e-mail
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with pagination
func (r *GormUserRepository) List(ctx context.Context, filter ListFilter) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Scopes(paginate(filter)).
		Order("created_at ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies changes to a user
func (r *GormUserRepository) Update(ctx context.Context, id uuid.UUID, changes Changes) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any(changes)).Error
	})
}

// Delete removes a user. Projects owned by the user go with it, including
// their tasks; the user's other tasks stay and lose their owner.
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedProjects := tx.Model(&models.Project{}).Select("id").Where("owner_id = ?", id)
		if err := tx.Where("project_id IN (?)", ownedProjects).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("owner_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("owner_id = ?", id).
			Updates(map[string]any{"owner_id": nil}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
}
