package config

import "time"

// Environment variable names
const (
	EnvSchemaVersion       = "ENV_SCHEMA_VERSION"
	EnvPort                = "PORT"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvServiceName         = "SERVICE_NAME"
	EnvVersion             = "VERSION"
	EnvEnvironment         = "ENVIRONMENT"
	EnvDBUser              = "DB_USER"
	EnvDBPassword          = "DB_PASSWORD"
	EnvDBHost              = "DB_HOST"
	EnvDBPort              = "DB_PORT"
	EnvDBName              = "DB_NAME"
	EnvDBMaxConns          = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime   = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime   = "DB_MAX_CONN_LIFETIME"
	EnvAPIKey              = "API_KEY"
	EnvTrustedProxies      = "TRUSTED_PROXIES"
	EnvCatalogCacheSize    = "CATALOG_CACHE_SIZE"
	EnvCatalogCacheTTL     = "CATALOG_CACHE_TTL"
	EnvCatalogSeedPath     = "CATALOG_SEED_PATH"
	EnvLookupRetryAttempts = "LOOKUP_RETRY_ATTEMPTS"
	EnvLookupRetryDelay    = "LOOKUP_RETRY_DELAY"
	EnvShutdownTimeout     = "SHUTDOWN_TIMEOUT"
	EnvEventRetryAttempts  = "EVENT_RETRY_ATTEMPTS"
	EnvEventRetryDelay     = "EVENT_RETRY_DELAY"
	EnvEventDeadLetterPath = "EVENT_DEAD_LETTER_PATH"
	EnvLobbyTTL            = "LOBBY_TTL"
	EnvLobbySweepInterval  = "LOBBY_SWEEP_INTERVAL"
)

// Defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "pack-battle"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultDBUser            = "postgres"
	DefaultDBPassword        = "postgres"
	DefaultDBHost            = "localhost"
	DefaultDBPort            = "5432"
	DefaultDBName            = "packbattle"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultCatalogCacheSize = 256
	DefaultCatalogCacheTTL  = 5 * time.Minute

	DefaultLookupRetryAttempts = 3
	DefaultLookupRetryDelay    = 100 * time.Millisecond

	DefaultShutdownTimeout = 10 * time.Second

	DefaultEventRetryAttempts  = 3
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultLobbyTTL           = 30 * time.Minute
	DefaultLobbySweepInterval = time.Minute
)

// Example values shipped in .env.example that must not reach production
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// ConfigPathBoxes is the catalog seed file shipped with the repository
const ConfigPathBoxes = "configs/boxes.json"
