package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = apierrors.New(apierrors.DomainUser, apierrors.CodeNotFound, "User not found")
	ErrEmailAlreadyExists = apierrors.New(apierrors.DomainUser, apierrors.CodeAlreadyExists, "E-mail address is already in use")
	ErrInvalidCredentials = apierrors.New(apierrors.DomainUser, apierrors.CodeUnauthorized, "Invalid e-mail or password")
	ErrUserInactive       = apierrors.New(apierrors.DomainUser, apierrors.CodeForbidden, "User account is inactive")
	ErrPasswordTooShort   = apierrors.New(apierrors.DomainUser, apierrors.CodeBadRequest, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	ErrEmailRequired      = apierrors.New(apierrors.DomainUser, apierrors.CodeBadRequest, "E-mail address is required")
)

// UserService owns the user lifecycle and e-mail uniqueness.
type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewUserService creates a new UserService. bcryptCost is passed straight to
// bcrypt.GenerateFromPassword.
func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// CreateUserInput represents the information needed to sign a user up.
type CreateUserInput struct {
	Email    string
	FullName *string
	Password string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	FullName *string
	Password *string
	IsActive *bool
}

// NormalizeEmail is the form e-mails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound.With(apierrors.Context{"id": id.String()})
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetByEmail returns a user by e-mail.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound.With(apierrors.Context{"email": email})
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// List returns a page of users and the total count.
func (s *UserService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, repository.ListFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Create signs a new user up. The e-mail must not be registered yet.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired.With(nil)
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort.With(nil)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists.With(apierrors.Context{"email": email})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.Get(ctx, user.ID)
}

// Update applies the fields present in input. An input with no field set
// performs no write, so updated_at stays as it was.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := repository.Changes{}
	if input.FullName != nil {
		changes["full_name"] = *input.FullName
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort.With(apierrors.Context{"id": id.String()})
		}
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		changes["password_hash"] = hash
	}
	if input.IsActive != nil {
		changes["is_active"] = *input.IsActive
	}

	if len(changes) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, id, changes); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.Get(ctx, id)
}

// Remove deletes a user. Their projects and the tasks in them are deleted;
// their other tasks are kept without an owner.
func (s *UserService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Authenticate verifies credentials and returns the matching active user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials.With(nil)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials.With(nil)
	}

	if !user.IsActive {
		return nil, ErrUserInactive.With(apierrors.Context{"id": user.ID.String()})
	}

	return user, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
