package handler

import (
	"net/http"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/player"
)

// UpdateProfileRequest updates account display fields
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=60"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// PlayerHandler handles profile and inventory HTTP requests
type PlayerHandler struct {
	playerSvc player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerSvc player.Service) *PlayerHandler {
	return &PlayerHandler{playerSvc: playerSvc}
}

// Profile handles the profile endpoint
// @Summary Get the caller's profile
// @Description Returns player progression plus all six skill tracks
// @Tags player
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Router /profile [get]
func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	profile, err := h.playerSvc.GetProfile(r.Context(), p.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get profile", "error", err, "playerID", p.ID)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles the profile update endpoint
// @Summary Update the caller's profile
// @Description Sets display name and email on the account
// @Tags player
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} SuccessResponse
// @Router /profile [put]
func (h *PlayerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := RequirePlayer(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update profile"); err != nil {
		return
	}

	if err := h.playerSvc.UpdateProfile(r.Context(), p.UserID, req.DisplayName, req.Email); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Profile updated"})
}

// Inventory handles the inventory endpoint
// @Summary Get the caller's inventory
// @Description Returns all held item stacks joined with catalog data
// @Tags player
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.InventoryItem
// @Router /inventory [get]
func (h *PlayerHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	p, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	inv, err := h.playerSvc.GetInventory(r.Context(), p.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get inventory", "error", err, "playerID", p.ID)
		respondServiceError(w, err)
		return
	}
	if inv == nil {
		inv = []domain.InventoryItem{}
	}
	respondJSON(w, http.StatusOK, inv)
}
