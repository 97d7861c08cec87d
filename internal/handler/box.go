package handler

import (
	"net/http"

	"github.com/osse101/PackBattle_Go/internal/catalog"
	"github.com/osse101/PackBattle_Go/internal/domain"
)

// BoxHandler serves the read-only catalog
type BoxHandler struct {
	catalog catalog.Service
}

// NewBoxHandler creates a BoxHandler
func NewBoxHandler(catalog catalog.Service) *BoxHandler {
	return &BoxHandler{catalog: catalog}
}

// HandleListBoxes lists every box without its entries
// @Summary List boxes
// @Tags boxes
// @Produce json
// @Success 200 {array} BoxResponse
// @Security ApiKeyAuth
// @Router /api/v1/boxes [get]
func (h *BoxHandler) HandleListBoxes(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.catalog.ListBoxes(r.Context())
	if err != nil {
		respondServiceError(w, r, "ListBoxes", err)
		return
	}

	resp := make([]BoxResponse, len(boxes))
	for i := range boxes {
		resp[i] = newBoxResponse(&boxes[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleGetBox returns a box with its catalog and pull chances
// @Summary Get box
// @Tags boxes
// @Produce json
// @Param id path string true "Box ID"
// @Success 200 {object} BoxResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/boxes/{id} [get]
func (h *BoxHandler) HandleGetBox(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	box, err := h.catalog.GetBox(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "GetBox", err)
		return
	}
	if box == nil {
		respondServiceError(w, r, "GetBox", domain.ErrBoxNotFound)
		return
	}

	respondJSON(w, http.StatusOK, newBoxResponse(box))
}

// HandleCacheStats reports catalog cache effectiveness
// @Summary Catalog cache stats
// @Tags boxes
// @Produce json
// @Success 200 {object} catalog.CacheStats
// @Security ApiKeyAuth
// @Router /api/v1/boxes/cache/stats [get]
func (h *BoxHandler) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Stats())
}
