package service

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/messagely/messagely/internal/metrics"
	"github.com/messagely/messagely/internal/model"
	"github.com/messagely/messagely/internal/repository"
)

// MessageStore is the persistence surface the message service needs.
// Implemented by repository.Repository.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	GetMessageByID(ctx context.Context, id string) (*model.Message, error)
	MarkMessageRead(ctx context.Context, id string) (time.Time, error)
	ListMessagesFrom(ctx context.Context, username string) ([]model.Message, error)
	ListMessagesTo(ctx context.Context, username string) ([]model.Message, error)
}

// RecipientChecker resolves whether a username exists. Implemented by
// repository.Repository; the message service uses it to keep the
// message-to-user foreign key honest before inserting.
type RecipientChecker interface {
	UserExists(ctx context.Context, username string) (bool, error)
}

// MessageService stores and serves directed messages. Visibility
// enforcement lives with its callers; this service trusts the
// usernames it is handed.
type MessageService struct {
	store   MessageStore
	users   RecipientChecker
	metrics metrics.Recorder
	now     func() time.Time
}

// NewMessageService creates a MessageService.
func NewMessageService(store MessageStore, users RecipientChecker, recorder metrics.Recorder) *MessageService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MessageService{
		store:   store,
		users:   users,
		metrics: recorder,
		now:     time.Now,
	}
}

// ReadReceipt is the result of marking a message read.
type ReadReceipt struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// Send creates a directed message from one user to another and
// returns the full record with both participant profiles projected.
// Fails with ErrEmptyBody for a blank body and ErrUnknownRecipient if
// the recipient is not a registered user. Self-messages are permitted.
func (s *MessageService) Send(ctx context.Context, fromUsername, toUsername, body string) (*model.Message, error) {
	if body == "" {
		return nil, ErrEmptyBody
	}

	exists, err := s.users.UserExists(ctx, toUsername)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownRecipient
	}

	msg := &model.Message{
		ID:           ulid.Make().String(),
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       s.now(),
	}

	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.metrics.IncMessageSent()

	return s.GetByID(ctx, msg.ID)
}

// GetByID returns a message with both profiles projected. Fails with
// ErrMessageNotFound if no such message.
func (s *MessageService) GetByID(ctx context.Context, id string) (*model.Message, error) {
	msg, err := s.store.GetMessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}

// MarkRead stamps the message's read_at and returns the receipt. The
// stamp is unconditional; marking an already-read message re-stamps
// it. Fails with ErrMessageNotFound if the message does not exist.
func (s *MessageService) MarkRead(ctx context.Context, id string) (*ReadReceipt, error) {
	readAt, err := s.store.MarkMessageRead(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	s.metrics.IncMessageRead()

	return &ReadReceipt{ID: id, ReadAt: readAt}, nil
}

// ListSentBy returns every message sent by the user, recipient
// profile projected.
func (s *MessageService) ListSentBy(ctx context.Context, username string) ([]model.Message, error) {
	return s.store.ListMessagesFrom(ctx, username)
}

// ListReceivedBy returns every message received by the user, sender
// profile projected.
func (s *MessageService) ListReceivedBy(ctx context.Context, username string) ([]model.Message, error) {
	return s.store.ListMessagesTo(ctx, username)
}
