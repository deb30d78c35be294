package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/messagely/messagely/internal/handler/dto"
	"github.com/messagely/messagely/internal/service"
)

// UserHandler handles HTTP requests for the user directory and the
// per-user message listings.
type UserHandler struct {
	users    *service.DirectoryService
	messages *service.MessageService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.DirectoryService, messages *service.MessageService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		messages: messages,
		logger:   logger,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.users.ListAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserListResponse{Users: profiles})
}

// Get handles GET /users/{username}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	detail, err := h.users.GetProfile(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserResponse{User: detail})
}

// MessagesTo handles GET /users/{username}/to: messages the user has
// received, each with the sender's profile attached.
func (h *UserHandler) MessagesTo(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	messages, err := h.messages.ListReceivedBy(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageListResponse{Messages: messages})
}

// MessagesFrom handles GET /users/{username}/from: messages the user
// has sent, each with the recipient's profile attached.
func (h *UserHandler) MessagesFrom(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	messages, err := h.messages.ListSentBy(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageListResponse{Messages: messages})
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
