package bootstrap

// DirPermission is used when creating the dead-letter directory
const DirPermission = 0755

// Logger messages
const (
	LogMsgStarting            = "Starting PackBattle"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Event system messages
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventStreamReady           = "Event stream hub started"
	ErrMsgFailedCreateDeadLetterDir  = "failed to create dead-letter directory"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// Catalog sync messages
const (
	LogMsgSyncingCatalog    = "Syncing catalog from JSON config..."
	LogMsgCatalogSynced     = "Catalog synced successfully"
	LogMsgCatalogExported   = "Catalog exported"
	ErrMsgFailedLoadBoxes   = "failed to load boxes config"
	ErrMsgInvalidBoxes      = "invalid boxes config"
	ErrMsgFailedSyncBox     = "failed to sync box"
	ErrMsgFailedExportBoxes = "failed to export boxes"
)

// Background job messages
const (
	LogMsgLobbyExpiryStarted  = "Lobby expiry scheduled"
	LogMsgLobbyExpiryDisabled = "Lobby expiry disabled"
)

// Shutdown messages
const (
	LogMsgClosingStreams             = "Closing event streams..."
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgWorkerStopFailed           = "Background worker did not stop cleanly"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
