package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/PackBattle_Go/internal/database/schema"
)

// Migrate applies every pending embedded migration to the database behind pool
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return withGoose(pool, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, schema.MigrationsDir); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToReadVersion, err)
		}
		slog.Default().Info(LogMsgMigrationsApplied, "version", version)
		return nil
	})
}

// MigrateDown rolls back the most recent migration
func MigrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	return withGoose(pool, func(db *sql.DB) error {
		if err := goose.DownContext(ctx, db, schema.MigrationsDir); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToRollback, err)
		}
		return nil
	})
}

// MigrationVersion reports the schema version currently applied
func MigrationVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var version int64
	err := withGoose(pool, func(db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToReadVersion, err)
		}
		version = v
		return nil
	})
	return version, err
}

func withGoose(pool *pgxpool.Pool, fn func(db *sql.DB) error) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(schema.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	return fn(db)
}
