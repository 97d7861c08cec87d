package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PackBattle_Go/internal/config"
	"github.com/osse101/PackBattle_Go/internal/database"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL honours DB_URL, falling back to the same DB_* variables the app reads
func dbURL() string {
	if u := os.Getenv("DB_URL"); u != "" {
		return u
	}
	cfg := config.Config{
		DBUser:     getEnv(config.EnvDBUser, config.DefaultDBUser),
		DBPassword: getEnv(config.EnvDBPassword, config.DefaultDBPassword),
		DBHost:     getEnv(config.EnvDBHost, config.DefaultDBHost),
		DBPort:     getEnv(config.EnvDBPort, config.DefaultDBPort),
		DBName:     getEnv(config.EnvDBName, config.DefaultDBName),
	}
	return cfg.GetDBConnString()
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := dbURL()
	PrintInfo("Connecting to database: %s", redactPassword(connStr))

	pool, err := database.NewPool(ctx, database.PoolConfig{ConnString: connStr, MaxConns: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}
