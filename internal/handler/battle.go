package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PackBattle_Go/internal/battle"
	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

// BattleHandler serves the battle lobby and settlement endpoints
type BattleHandler struct {
	service battle.Service
}

// NewBattleHandler creates a BattleHandler
func NewBattleHandler(service battle.Service) *BattleHandler {
	return &BattleHandler{service: service}
}

// CreateBattleRequest opens a new lobby
type CreateBattleRequest struct {
	BoxID           string          `json:"box_id" validate:"required,uuid"`
	Mode            string          `json:"mode" validate:"required,battlemode"`
	Rounds          int             `json:"rounds" validate:"required,min=1,max=10"`
	MaxParticipants int             `json:"max_participants" validate:"required,min=2,max=4"`
	EntryFee        decimal.Decimal `json:"entry_fee" swaggertype:"number"`
}

// SetReadyRequest toggles the caller's readiness
type SetReadyRequest struct {
	Ready *bool `json:"ready" validate:"required"`
}

// actingUser returns the caller or writes a 401
func actingUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id := UserIDFromContext(r.Context())
	if id == uuid.Nil {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingUser)
		return uuid.Nil, false
	}
	return id, true
}

// HandleCreateBattle opens a battle lobby and charges the creator's entry fee
// @Summary Create battle
// @Description Opens a lobby; the creator joins as the first participant and pays the entry fee
// @Tags battles
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param request body CreateBattleRequest true "Battle settings"
// @Success 201 {object} BattleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles [post]
func (h *BattleHandler) HandleCreateBattle(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req CreateBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create battle"); err != nil {
		return
	}

	b, err := h.service.CreateBattle(r.Context(), userID, battle.CreateParams{
		BoxID:           uuid.MustParse(req.BoxID),
		Mode:            domain.BattleMode(strings.ToUpper(req.Mode)),
		Rounds:          req.Rounds,
		MaxParticipants: req.MaxParticipants,
		EntryFee:        req.EntryFee,
	})
	if err != nil {
		respondServiceError(w, r, "CreateBattle", err)
		return
	}

	respondJSON(w, http.StatusCreated, newBattleResponse(b))
}

// HandleListBattles lists the newest battles
// @Summary List battles
// @Tags battles
// @Produce json
// @Param status query string false "WAITING, IN_PROGRESS or FINISHED"
// @Param limit query int false "Maximum results (default 20, max 100)"
// @Success 200 {array} BattleResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles [get]
func (h *BattleHandler) HandleListBattles(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	status := domain.BattleStatus(strings.ToUpper(GetOptionalQueryParam(r, "status", "")))

	battles, err := h.service.ListBattles(r.Context(), status, limit)
	if err != nil {
		respondServiceError(w, r, "ListBattles", err)
		return
	}

	resp := make([]BattleResponse, len(battles))
	for i := range battles {
		resp[i] = newBattleResponse(&battles[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleGetBattle returns a battle with its participants and draws
// @Summary Get battle
// @Tags battles
// @Produce json
// @Param id path string true "Battle ID"
// @Success 200 {object} BattleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles/{id} [get]
func (h *BattleHandler) HandleGetBattle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	b, err := h.service.GetBattle(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "GetBattle", err)
		return
	}

	respondJSON(w, http.StatusOK, newBattleResponse(b))
}

// HandleJoinBattle adds the caller to a waiting battle
// @Summary Join battle
// @Tags battles
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param id path string true "Battle ID"
// @Success 200 {object} BattleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles/{id}/join [post]
func (h *BattleHandler) HandleJoinBattle(w http.ResponseWriter, r *http.Request) {
	h.lobbyAction(w, r, "JoinBattle", h.service.JoinBattle)
}

// HandleAddBot fills a seat with a bot
// @Summary Add bot
// @Description Creator or admin only; bots are ready immediately and pay no fee
// @Tags battles
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param id path string true "Battle ID"
// @Success 200 {object} BattleResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles/{id}/bots [post]
func (h *BattleHandler) HandleAddBot(w http.ResponseWriter, r *http.Request) {
	h.lobbyAction(w, r, "AddBot", h.service.AddBot)
}

// HandleSetReady toggles the caller's readiness
// @Summary Set ready
// @Tags battles
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param id path string true "Battle ID"
// @Param request body SetReadyRequest true "Readiness"
// @Success 200 {object} BattleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles/{id}/ready [post]
func (h *BattleHandler) HandleSetReady(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req SetReadyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set ready"); err != nil {
		return
	}

	b, err := h.service.SetReady(r.Context(), userID, id, *req.Ready)
	if err != nil {
		respondServiceError(w, r, "SetReady", err)
		return
	}

	respondJSON(w, http.StatusOK, newBattleResponse(b))
}

// HandleStartBattle draws every round, resolves the winner and settles
// @Summary Start battle
// @Description Runs the battle and returns the settled result with every draw
// @Tags battles
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param id path string true "Battle ID"
// @Success 200 {object} BattleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles/{id}/start [post]
func (h *BattleHandler) HandleStartBattle(w http.ResponseWriter, r *http.Request) {
	h.lobbyAction(w, r, "StartBattle", h.service.StartBattle)
}

// HandleDeleteBattle cancels a waiting battle and refunds entry fees
// @Summary Delete battle
// @Tags battles
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param id path string true "Battle ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/battles/{id} [delete]
func (h *BattleHandler) HandleDeleteBattle(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBattle(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, "DeleteBattle", err)
		return
	}

	logger.FromContext(r.Context()).Info("Battle deleted", "battleID", id, "callerID", userID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBattleDeleted})
}

// lobbyAction runs a caller+battle operation that returns the updated battle
func (h *BattleHandler) lobbyAction(w http.ResponseWriter, r *http.Request, op string, action func(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error)) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	b, err := action(r.Context(), userID, id)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}

	respondJSON(w, http.StatusOK, newBattleResponse(b))
}
