package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/messagely/messagely/internal/auth"
	"github.com/messagely/messagely/internal/handler/dto"
	"github.com/messagely/messagely/internal/service"
)

// MessageHandler handles HTTP requests for message operations. The
// routes are mounted behind the authentication guard, so an identity
// is expected on the context; visibility beyond that (participant,
// recipient) is enforced here because it depends on the message row.
type MessageHandler struct {
	svc    *service.MessageService
	logger *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /messages. The sender is the authenticated
// identity, never a field of the request body.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var req dto.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	msg, err := h.svc.Send(r.Context(), identity.Username, req.ToUsername, req.Body)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("message_sent",
		"message_id", msg.ID,
		"from", msg.FromUsername,
		"to", msg.ToUsername,
	)

	writeJSON(w, http.StatusCreated, dto.MessageResponse{Message: msg})
}

// Get handles GET /messages/{id}. Only the sender and the recipient
// may read a message; anyone else gets the same 401 the guards
// produce.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !msg.IsParticipant(auth.UsernameFromContext(r.Context())) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: msg})
}

// MarkRead handles POST /messages/{id}/read. Only the recipient may
// mark a message read; the sender is a participant but still gets 401
// here.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !msg.IsRecipient(auth.UsernameFromContext(r.Context())) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	receipt, err := h.svc.MarkRead(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("message_read", "message_id", receipt.ID)

	writeJSON(w, http.StatusOK, dto.ReadReceiptResponse{
		Message: dto.ReadReceipt{ID: receipt.ID, ReadAt: receipt.ReadAt},
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *MessageHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
	case errors.Is(err, service.ErrUnknownRecipient):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Recipient is not a registered user")
	case errors.Is(err, service.ErrEmptyBody):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Message body must not be empty")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
