package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := setup()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if !skipMigrate {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}

		gin.SetMode(cfg.GinMode)

		userRepo := repository.NewUserRepository(db)
		taskRepo := repository.NewTaskRepository(db)
		projectRepo := repository.NewProjectRepository(db)

		users := services.NewUserService(userRepo, cfg.BcryptCost)
		tasks := services.NewTaskService(taskRepo, projectRepo, users)
		projects := services.NewProjectService(projectRepo, taskRepo, users, tasks)

		router := handlers.NewRouter(db, handlers.Services{
			Users:    users,
			Tasks:    tasks,
			Projects: projects,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Logger.WithField("addr", srv.Addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run migrations before serving")
}
