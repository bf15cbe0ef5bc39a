package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProject creates a project owned by owner_id
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string    `json:"name"`
		Description *string   `json:"description"`
		OwnerID     uuid.UUID `json:"owner_id" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns a page of projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projects.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":   dto.ToProjectDTOs(projects),
		"pagination": params.Response(total),
	})
}

// GetProject returns a project with its tasks
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), middleware.GetUUIDParam(c, "id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// SearchProjects returns every project whose name contains the path fragment
func (h *ProjectHandler) SearchProjects(c *gin.Context) {
	projects, err := h.projects.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// UpdateProject renames a project or changes its description
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), middleware.GetUUIDParam(c, "id"), services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// AddTask moves a task into the project
func (h *ProjectHandler) AddTask(c *gin.Context) {
	project, err := h.projects.AddTask(c.Request.Context(),
		middleware.GetUUIDParam(c, "task_id"), middleware.GetUUIDParam(c, "id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// RemoveTask takes a task out of the project without deleting it
func (h *ProjectHandler) RemoveTask(c *gin.Context) {
	project, err := h.projects.RemoveTask(c.Request.Context(),
		middleware.GetUUIDParam(c, "task_id"), middleware.GetUUIDParam(c, "id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project and every task in it
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projects.Remove(c.Request.Context(), middleware.GetUUIDParam(c, "id")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
