package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/emberfall-games/guildhall/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	// RetryAfterSeconds is set on cooldown errors.
	RetryAfterSeconds int `json:"retry_after_seconds,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto an HTTP status and writes
// it. The error taxonomy drives the mapping: not-found -> 404, state
// conflict -> 409, failed precondition -> 422, validation -> 400,
// auth -> 401, anything unrecognized -> 500 with a generic body.
func respondServiceError(w http.ResponseWriter, err error) {
	var cooldown domain.CooldownError
	if errors.As(err, &cooldown) {
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:             err.Error(),
			RetryAfterSeconds: cooldown.RemainingSeconds(),
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrShopNotFound),
		errors.Is(err, domain.ErrGuildNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrTaskAlreadyActive),
		errors.Is(err, domain.ErrNoActiveTask),
		errors.Is(err, domain.ErrTaskNotFinished),
		errors.Is(err, domain.ErrAlreadyInGuild),
		errors.Is(err, domain.ErrNotInGuild),
		errors.Is(err, domain.ErrGuildNameTaken),
		errors.Is(err, domain.ErrGuildAtTopClass),
		errors.Is(err, domain.ErrUsernameTaken):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrSkillTooLow),
		errors.Is(err, domain.ErrRankTooLow),
		errors.Is(err, domain.ErrInsufficientMaterials),
		errors.Is(err, domain.ErrInsufficientSupplies),
		errors.Is(err, domain.ErrInsufficientItems),
		errors.Is(err, domain.ErrInsufficientGold),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOnCooldown),
		errors.Is(err, domain.ErrNoEligibleMaterials),
		errors.Is(err, domain.ErrNotGuildLeader),
		errors.Is(err, domain.ErrGuildRankTooLow),
		errors.Is(err, domain.ErrGuildNeedAdventures):
		respondError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidTier),
		errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, err.Error())

	default:
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
	}
}
