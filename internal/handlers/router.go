package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/database"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// Services bundles what the router dispatches to
type Services struct {
	Users    *services.UserService
	Tasks    *services.TaskService
	Projects *services.ProjectService
}

// NewRouter builds the gin engine with every route mounted
func NewRouter(db *gorm.DB, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(), middleware.Metrics())

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	userHandler := NewUserHandler(svc.Users)
	taskHandler := NewTaskHandler(svc.Tasks)
	projectHandler := NewProjectHandler(svc.Projects)

	id := middleware.RequireUUIDParam("id")
	taskID := middleware.RequireUUIDParam("task_id")

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.POST("/login", userHandler.Login)
			users.GET("/email/:email", userHandler.GetUserByEmail)
			users.GET("/:id", id, userHandler.GetUser)
			users.PATCH("/:id", id, userHandler.UpdateUser)
			users.DELETE("/:id", id, userHandler.DeleteUser)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/name/:name", taskHandler.SearchTasks)
			tasks.GET("/:id", id, taskHandler.GetTask)
			tasks.PATCH("/:id", id, taskHandler.UpdateTask)
			tasks.PATCH("/:id/owner", id, taskHandler.AssignOwner)
			tasks.DELETE("/:id", id, taskHandler.DeleteTask)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/name/:name", projectHandler.SearchProjects)
			projects.GET("/:id", id, projectHandler.GetProject)
			projects.PATCH("/:id", id, projectHandler.UpdateProject)
			projects.DELETE("/:id", id, projectHandler.DeleteProject)
			projects.POST("/:id/tasks/:task_id", id, taskID, projectHandler.AddTask)
			projects.DELETE("/:id/tasks/:task_id", id, taskID, projectHandler.RemoveTask)
		}
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			apierrors.RespondWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
