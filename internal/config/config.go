package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey         string
	TrustedProxies []string

	CatalogCacheSize int
	CatalogCacheTTL  time.Duration
	CatalogSeedPath  string

	LookupRetryAttempts int
	LookupRetryDelay    time.Duration

	ShutdownTimeout time.Duration

	EventRetryAttempts  int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// LobbySweepInterval of 0 disables lobby expiry
	LobbyTTL           time.Duration
	LobbySweepInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env file is fine; real env vars may be set instead
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnv(EnvLogFormat, DefaultLogFormat),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),

		DBUser:            getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:        getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:            getEnv(EnvDBHost, DefaultDBHost),
		DBPort:            getEnv(EnvDBPort, DefaultDBPort),
		DBName:            getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:        getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),

		APIKey:         getEnv(EnvAPIKey, ""),
		TrustedProxies: getEnvAsList(EnvTrustedProxies),

		CatalogCacheSize: getEnvAsInt(EnvCatalogCacheSize, DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration(EnvCatalogCacheTTL, DefaultCatalogCacheTTL),
		CatalogSeedPath:  getEnv(EnvCatalogSeedPath, ""),

		LookupRetryAttempts: getEnvAsInt(EnvLookupRetryAttempts, DefaultLookupRetryAttempts),
		LookupRetryDelay:    getEnvAsDuration(EnvLookupRetryDelay, DefaultLookupRetryDelay),

		ShutdownTimeout: getEnvAsDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		EventRetryAttempts:  getEnvAsInt(EnvEventRetryAttempts, DefaultEventRetryAttempts),
		EventRetryDelay:     getEnvAsDuration(EnvEventRetryDelay, DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv(EnvEventDeadLetterPath, DefaultEventDeadLetterPath),

		LobbyTTL:           getEnvAsDuration(EnvLobbyTTL, DefaultLobbyTTL),
		LobbySweepInterval: getEnvAsDuration(EnvLobbySweepInterval, DefaultLobbySweepInterval),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.LobbyTTL <= 0 {
		return nil, fmt.Errorf("invalid LOBBY_TTL value: must be positive")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blank items
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
