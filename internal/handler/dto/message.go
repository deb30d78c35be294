package dto

import (
	"time"

	"github.com/messagely/messagely/internal/model"
)

// CreateMessageRequest represents the request body for sending a message.
// The sender is always taken from the authenticated identity.
type CreateMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

// MessageResponse wraps a single message.
type MessageResponse struct {
	Message *model.Message `json:"message"`
}

// MessageListResponse wraps a message listing.
type MessageListResponse struct {
	Messages []model.Message `json:"messages"`
}

// ReadReceipt is the confirmation returned after marking a message read.
type ReadReceipt struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// ReadReceiptResponse wraps a read receipt.
type ReadReceiptResponse struct {
	Message ReadReceipt `json:"message"`
}
