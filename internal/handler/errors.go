package handler

// Request error messages. These never carry internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidID             = "Invalid %s"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidStatus         = "Invalid status parameter"
	ErrMsgMissingUser           = "Missing X-User-ID header"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"

	ErrMsgNotAuthenticatedError  = "Authentication required"
	ErrMsgNotAuthorizedError     = "You are not allowed to do that"
	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgNotEnoughMoneyError    = "Not enough money"
	ErrMsgBoxNotFoundError       = "Box not found"
	ErrMsgEmptyCatalogError      = "This box has no cards"
	ErrMsgInvalidWeightError     = "Catalog weights must not be negative"
	ErrMsgBattleNotFoundError    = "Battle not found"
	ErrMsgBattleNotWaitingError  = "Battle has already started"
	ErrMsgBattleNotFullError     = "Battle is not full yet"
	ErrMsgBattleFullError        = "Battle is full"
	ErrMsgNotReadyError          = "Not every participant is ready"
	ErrMsgAlreadyJoinedError     = "You have already joined this battle"
	ErrMsgNotParticipantError    = "You are not in this battle"
	ErrMsgInvalidModeError       = "Invalid battle mode"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
)

// Success messages
const (
	MsgBattleDeleted = "Battle deleted"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceFailed   = "Service call failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
)
