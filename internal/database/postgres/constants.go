package postgres

import "errors"

// Postgres error codes
const (
	pgCodeUniqueViolation = "23505"
)

// Constraint names referenced when mapping errors
const (
	constraintParticipantUser = "battle_participants_battle_user_key"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
	LogMsgBoxUpserted    = "Box upserted"
)

// ErrBattleNotInProgress is returned when finishing a battle that is not IN_PROGRESS
var ErrBattleNotInProgress = errors.New("battle is not in progress")

// ErrCardCountMismatch is returned when a card transfer touches fewer rows than requested
var ErrCardCountMismatch = errors.New("card transfer count mismatch")
