package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/messagely/messagely/internal/auth"
	"github.com/messagely/messagely/internal/handler/dto"
	"github.com/messagely/messagely/internal/service"
)

// AuthHandler handles HTTP requests for login and registration.
type AuthHandler struct {
	users  *service.DirectoryService
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.DirectoryService, tokens *auth.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	ok, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid username/password")
		return
	}

	if err := h.users.TouchLogin(r.Context(), req.Username); err != nil {
		h.handleServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_login", "username", req.Username)

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// Register handles POST /auth/register. A successful registration
// also logs the user in: the response carries a token and the login
// timestamp is already stamped.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered", "username", user.Username)

	writeJSON(w, http.StatusCreated, dto.TokenResponse{Token: token})
}

// handleServiceError maps service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username already taken")
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
