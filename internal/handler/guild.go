package handler

import (
	"net/http"

	"github.com/emberfall-games/guildhall/internal/guild"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/metrics"
)

// CreateGuildRequest creates a guild
type CreateGuildRequest struct {
	Name string `json:"name" validate:"required,min=3,max=60"`
}

// PromoteGuildResponse reports the class reached by a promotion
type PromoteGuildResponse struct {
	NewClass int `json:"new_class"`
}

// GuildHandler handles guild HTTP requests
type GuildHandler struct {
	guildSvc guild.Service
}

// NewGuildHandler creates a new guild handler
func NewGuildHandler(guildSvc guild.Service) *GuildHandler {
	return &GuildHandler{guildSvc: guildSvc}
}

// Create handles the guild creation endpoint
// @Summary Create a guild
// @Description Creates a guild at the starting class with the caller as leader
// @Tags guild
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGuildRequest true "Guild name"
// @Success 201 {object} domain.Guild
// @Failure 409 {object} ErrorResponse "Name taken or already in a guild"
// @Router /guilds [post]
func (h *GuildHandler) Create(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}
	var req CreateGuildRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create guild"); err != nil {
		return
	}

	g, err := h.guildSvc.Create(r.Context(), player.ID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

// Get handles the guild view endpoint
// @Summary Get the caller's guild
// @Description Returns the guild, roster, and next promotion requirements
// @Tags guild
// @Produce json
// @Security BearerAuth
// @Success 200 {object} guild.View
// @Failure 409 {object} ErrorResponse "Not in a guild"
// @Router /guilds/mine [get]
func (h *GuildHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	view, err := h.guildSvc.Get(r.Context(), player.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Promote handles the guild promotion endpoint
// @Summary Promote the caller's guild
// @Description Leader-only; all members must meet the next class's rank and adventure requirements
// @Tags guild
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PromoteGuildResponse
// @Failure 422 {object} ErrorResponse "Requirements not met or not leader"
// @Router /guilds/promote [post]
func (h *GuildHandler) Promote(w http.ResponseWriter, r *http.Request) {
	player, ok := RequirePlayer(w, r)
	if !ok {
		return
	}

	newClass, err := h.guildSvc.Promote(r.Context(), player.ID)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Guild promotion failed", "error", err, "playerID", player.ID)
		respondServiceError(w, err)
		return
	}
	metrics.GuildPromotions.Inc()
	respondJSON(w, http.StatusOK, PromoteGuildResponse{NewClass: newClass})
}
