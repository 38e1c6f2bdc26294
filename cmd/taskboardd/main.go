package main

import (
	"fmt"
	"os"

	"github.com/kutbudev/taskboard/api"
	"github.com/kutbudev/taskboard/internal/config"
	"github.com/kutbudev/taskboard/internal/logging"
	"github.com/kutbudev/taskboard/internal/repository"
	"github.com/spf13/cobra"
)

// Version will be set during build with ldflags
var Version = "0.3.0"

func main() {
	root := &cobra.Command{
		Use:     "taskboardd",
		Short:   "Project and task tracking API server",
		Version: Version,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Init(cfg.Logging.Level, cfg.Logging.File)
			if cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}

			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			logging.Logger.WithField("addr", addr).Info("starting server")
			return api.NewRouter(db, cfg.Auth.JWTSecret).Run(addr)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Init(cfg.Logging.Level, cfg.Logging.File)

			// NewDatabase migrates on connect.
			if _, err := repository.NewDatabase(cfg); err != nil {
				return err
			}
			logging.Logger.Info("migrations applied")
			return nil
		},
	}
}
