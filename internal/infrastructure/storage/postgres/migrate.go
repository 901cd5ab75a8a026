package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"rentora/pkg/logger"
)

// MigrationTableName is the goose bookkeeping table.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs a goose command ("up", "down", "status", "version", "reset")
// against the embedded migrations.
func Migrate(ctx context.Context, pool *Pool, command string, args ...string) error {
	db := stdlib.OpenDBFromPool(pool.Unwrap())
	defer db.Close()

	goose.SetBaseFS(migrations)
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	logger.Info(ctx, "running migrations", "command", command, "args", args)
	if err := goose.RunContext(ctx, command, db, "migrations", args...); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
