package commands

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "task-tracker",
	Short: "REST backend for users, tasks and projects",
	Long: `task-tracker serves the users/tasks/projects API over HTTP.
Configuration comes from an optional TOML file and environment variables.`,
	SilenceUsage: true,
}

// setup loads configuration, initializes the logger and opens the database
func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Init(constants.ServiceName, cfg.LogLevel)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
