package handler

import (
	"net/http"

	"github.com/emberfall-games/guildhall/internal/auth"
	"github.com/emberfall-games/guildhall/internal/logger"
)

// RegisterRequest represents a new account request
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=40,excludesall= "`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler handles account registration and login
type AuthHandler struct {
	authSvc auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc auth.Service) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles the register endpoint
// @Summary Register a new account
// @Description Creates an account and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} auth.Credentials
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}

	creds, err := h.authSvc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Registration failed", "username", req.Username, "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, creds)
}

// Login handles the login endpoint
// @Summary Log in
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} auth.Credentials
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	creds, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, creds)
}
