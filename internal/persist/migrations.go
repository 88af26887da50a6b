package persist

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations brings the game_specs schema up to date.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return migrate(ctx, pool, goose.UpContext)
}

// ResetMigrations rolls every migration back. Used by tests to start clean.
func ResetMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return migrate(ctx, pool, goose.ResetContext)
}

func migrate(ctx context.Context, pool *pgxpool.Pool, run func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := run(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
