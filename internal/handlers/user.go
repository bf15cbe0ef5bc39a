package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email    string  `json:"email" binding:"required,email"`
		FullName *string `json:"full_name"`
		Password string  `json:"password" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), services.CreateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns a page of users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.users.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      dto.ToUserDTOs(users),
		"pagination": params.Response(total),
	})
}

// GetUser returns a single user
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.GetUUIDParam(c, "id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetUserByEmail looks a user up by e-mail address
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	type UpdateUserRequest struct {
		FullName *string `json:"full_name"`
		Password *string `json:"password"`
		IsActive *bool   `json:"is_active"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.GetUUIDParam(c, "id"), services.UpdateUserInput{
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user together with their projects and those projects' tasks
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Remove(c.Request.Context(), middleware.GetUUIDParam(c, "id")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Login checks credentials and returns the user
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func invalidBody(c *gin.Context, err error) {
	apierrors.BadRequest(c, "Invalid request body", apierrors.Context{"error": err.Error()})
}
