package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask creates a task owned by owner_id
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name        string       `json:"name"`
		Description *string      `json:"description"`
		Deadline    *models.Date `json:"deadline"`
		OwnerID     uuid.UUID    `json:"owner_id" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns a page of tasks, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.tasks.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":      dto.ToTaskDTOs(tasks),
		"pagination": params.Response(total),
	})
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), middleware.GetUUIDParam(c, "id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SearchTasks returns every task whose name contains the path fragment
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	tasks, err := h.tasks.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// UpdateTask applies a partial update. The deadline only changes when
// set_deadline is present in the body.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Name        *string      `json:"name"`
		Description *string      `json:"description"`
		Complete    *bool        `json:"complete"`
		SetDeadline *bool        `json:"set_deadline"`
		Deadline    *models.Date `json:"deadline"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), middleware.GetUUIDParam(c, "id"), services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Complete:    req.Complete,
		SetDeadline: req.SetDeadline,
		Deadline:    req.Deadline,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignOwner hands the task to owner_id, or unassigns it when owner_id is null
func (h *TaskHandler) AssignOwner(c *gin.Context) {
	type AssignOwnerRequest struct {
		OwnerID *uuid.UUID `json:"owner_id"`
	}

	var req AssignOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	task, err := h.tasks.AssignOwner(c.Request.Context(), middleware.GetUUIDParam(c, "id"), req.OwnerID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.tasks.Remove(c.Request.Context(), middleware.GetUUIDParam(c, "id")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
