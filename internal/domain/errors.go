package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgNotAuthenticated = "not authenticated"
	ErrMsgNotAuthorized    = "not authorized"

	// User errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Box/catalog errors
	ErrMsgBoxNotFound   = "box not found"
	ErrMsgEmptyCatalog  = "catalog has no items"
	ErrMsgInvalidWeight = "catalog weights must be non-negative"

	// Battle errors
	ErrMsgBattleNotFound       = "battle not found"
	ErrMsgBattleNotWaiting     = "battle already started or finished"
	ErrMsgBattleNotFull        = "battle is not full"
	ErrMsgBattleFull           = "battle is full"
	ErrMsgParticipantsNotReady = "not all participants are ready"
	ErrMsgAlreadyJoined        = "user already joined this battle"
	ErrMsgNotParticipant       = "user is not a participant of this battle"
	ErrMsgInvalidMode          = "invalid battle mode"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)
	ErrNotAuthorized    = errors.New(ErrMsgNotAuthorized)

	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	ErrBoxNotFound   = errors.New(ErrMsgBoxNotFound)
	ErrEmptyCatalog  = errors.New(ErrMsgEmptyCatalog)
	ErrInvalidWeight = errors.New(ErrMsgInvalidWeight)

	ErrBattleNotFound       = errors.New(ErrMsgBattleNotFound)
	ErrBattleNotWaiting     = errors.New(ErrMsgBattleNotWaiting)
	ErrBattleNotFull        = errors.New(ErrMsgBattleNotFull)
	ErrBattleFull           = errors.New(ErrMsgBattleFull)
	ErrParticipantsNotReady = errors.New(ErrMsgParticipantsNotReady)
	ErrAlreadyJoined        = errors.New(ErrMsgAlreadyJoined)
	ErrNotParticipant       = errors.New(ErrMsgNotParticipant)
	ErrInvalidMode          = errors.New(ErrMsgInvalidMode)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
