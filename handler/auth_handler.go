package handler

import (
	"echocity/models"
	"echocity/service"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthHandler serves the session, login, registration and logout endpoints
type AuthHandler struct {
	auth     *service.AuthService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		auth:     auth,
		validate: validator.New(),
		logger:   logger.Named("auth_handler"),
	}
}

// GetSession handles GET /api/v1/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	profile := h.auth.GetCurrentSession(r.Context())
	if profile == nil {
		respondWithError(w, http.StatusNotFound, "Not found", "No active session")
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	profile, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("login failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to log in")
		return
	}
	if profile == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", service.MsgInvalidCredentials)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	profile, err := h.auth.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			respondWithError(w, http.StatusBadRequest, "Validation error", verr.Message)
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to register")
		return
	}

	respondWithJSON(w, http.StatusCreated, profile)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
