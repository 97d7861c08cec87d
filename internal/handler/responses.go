package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/PackBattle_Go/internal/battle"
	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err with full detail and answers with the mapped
// status and a user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceFailed, "operation", op, "error", err)
	} else {
		log.Warn(LogMsgServiceFailed, "operation", op, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP statuses and
// user-facing messages. Unknown errors and settlements that failed past the
// status gate become an opaque 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	var settleErr *battle.SettlementError
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.As(err, &settleErr) && settleErr.Phase != battle.PhaseStatusGate:
		return http.StatusInternalServerError, ErrMsgGenericServerError

	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, ErrMsgNotAuthenticatedError

	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden, ErrMsgNotAuthorizedError
	case errors.Is(err, domain.ErrNotParticipant):
		return http.StatusForbidden, ErrMsgNotParticipantError

	case errors.Is(err, domain.ErrBattleNotFound):
		return http.StatusNotFound, ErrMsgBattleNotFoundError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrBoxNotFound):
		return http.StatusNotFound, ErrMsgBoxNotFoundError

	case errors.Is(err, domain.ErrBattleNotWaiting):
		return http.StatusConflict, ErrMsgBattleNotWaitingError
	case errors.Is(err, domain.ErrBattleNotFull):
		return http.StatusConflict, ErrMsgBattleNotFullError
	case errors.Is(err, domain.ErrBattleFull):
		return http.StatusConflict, ErrMsgBattleFullError
	case errors.Is(err, domain.ErrParticipantsNotReady):
		return http.StatusConflict, ErrMsgNotReadyError
	case errors.Is(err, domain.ErrAlreadyJoined):
		return http.StatusConflict, ErrMsgAlreadyJoinedError

	case errors.Is(err, domain.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity, ErrMsgEmptyCatalogError
	case errors.Is(err, domain.ErrInvalidWeight):
		return http.StatusUnprocessableEntity, ErrMsgInvalidWeightError

	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInvalidMode):
		return http.StatusBadRequest, ErrMsgInvalidModeError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
