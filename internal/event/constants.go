package event

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// DeadLetterSchemaVersion is the version of the dead-letter line format.
// Increment it when DeadLetterEntry changes.
const DeadLetterSchemaVersion = "1.0"

// DeadLetterFilePermissions is the file permission mode for dead-letter files
const DeadLetterFilePermissions = 0644

// Log message constants
const (
	LogMsgEventPublishFailed    = "Failed to publish event, initiating async retry"
	LogMsgEventRetryFailed      = "Event retry failed"
	LogMsgEventRetrySucceeded   = "Successfully published event after retry"
	LogMsgEventDeadLettered     = "Event written to dead letter queue"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter file"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
