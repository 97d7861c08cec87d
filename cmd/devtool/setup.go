package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/PackBattle_Go/internal/config"
	"github.com/osse101/PackBattle_Go/internal/database"
)

// maintenanceDB is the database used to create or drop the application database
const maintenanceDB = "postgres"

func adminConnString() (string, string) {
	cfg := config.Config{
		DBUser:     getEnv(config.EnvDBUser, config.DefaultDBUser),
		DBPassword: getEnv(config.EnvDBPassword, config.DefaultDBPassword),
		DBHost:     getEnv(config.EnvDBHost, config.DefaultDBHost),
		DBPort:     getEnv(config.EnvDBPort, config.DefaultDBPort),
		DBName:     maintenanceDB,
	}
	return cfg.GetDBConnString(), getEnv(config.EnvDBName, config.DefaultDBName)
}

func connectAdmin(ctx context.Context) (*pgx.Conn, string, error) {
	connStr, dbName := adminConnString()
	PrintInfo("Connecting to server: %s", redactPassword(connStr))
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, "", fmt.Errorf("unable to connect to %s database: %w", maintenanceDB, err)
	}
	return conn, dbName, nil
}

type SetupCommand struct{}

func (c *SetupCommand) Name() string {
	return "setup"
}

func (c *SetupCommand) Description() string {
	return "Create the database if missing and apply migrations"
}

func (c *SetupCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Setting up database")

	conn, dbName, err := connectAdmin(ctx)
	if err != nil {
		return err
	}

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		conn.Close(ctx)
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		PrintInfo("Database %s already exists", dbName)
	} else {
		PrintInfo("Creating database %s...", dbName)
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize()); err != nil {
			conn.Close(ctx)
			return fmt.Errorf("failed to create database: %w", err)
		}
		PrintSuccess("Database created")
	}
	conn.Close(ctx)

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	PrintSuccess("Setup complete. Next step: devtool seed")
	return nil
}

type ResetCommand struct {
	// in is read for the confirmation; nil means stdin
	in io.Reader
}

func (c *ResetCommand) Name() string {
	return "reset-db"
}

func (c *ResetCommand) Description() string {
	return "Drop and recreate the database (destroys all data)"
}

func (c *ResetCommand) Run(ctx context.Context, args []string) error {
	_, dbName := adminConnString()
	prompt := fmt.Sprintf("This drops database %s. Type 'yes' to continue: ", dbName)
	if !(&MigrateCommand{in: c.in}).confirm(prompt) {
		PrintWarning("Reset cancelled")
		return nil
	}

	conn, dbName, err := connectAdmin(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	PrintInfo("Terminating existing connections to %s...", dbName)
	_, err = conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, dbName)
	if err != nil {
		PrintWarning("Failed to terminate connections: %v", err)
	}

	ident := pgx.Identifier{dbName}.Sanitize()
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	PrintSuccess("Database %s reset. Next step: devtool migrate up", dbName)
	return nil
}
