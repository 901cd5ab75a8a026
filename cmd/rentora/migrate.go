package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rentora/internal/config"
	"rentora/internal/infrastructure/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version|reset|up-to VERSION|down-to VERSION]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"up", "down", "status", "version", "reset", "up-to", "down-to"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.StorageDriver != config.DriverPostgres {
				return fmt.Errorf("migrate requires STORAGE_DRIVER=%s, got %q", config.DriverPostgres, cfg.StorageDriver)
			}

			ctx := cmd.Context()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			return postgres.Migrate(ctx, pool, args[0], args[1:]...)
		},
	}
}
