package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtroode/healthnest-server/database"
	"github.com/dtroode/healthnest-server/internal/config"
	"github.com/dtroode/healthnest-server/internal/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
			defer stop()

			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel)

			if cfg.StoreDriver != config.DriverPostgres {
				log.Warn("Migrate: store driver is not postgres, applying migrations anyway", "driver", cfg.StoreDriver)
			}

			if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			log.Info("Migrate: schema is up to date")
			return nil
		},
	}
}
