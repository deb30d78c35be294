package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/messagely/messagely/internal/model"
)

// ErrMessageNotFound indicates no message exists for the given id.
var ErrMessageNotFound = errors.New("message not found")

// CreateMessage inserts a new message row. SentAt must be set by the
// caller; ReadAt is left null.
func (r *Repository) CreateMessage(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (id, from_username, to_username, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.FromUsername,
		msg.ToUsername,
		msg.Body,
		msg.SentAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetMessageByID retrieves a message with both participant profiles
// projected. Fails with ErrMessageNotFound if no such message.
func (r *Repository) GetMessageByID(ctx context.Context, id string) (*model.Message, error) {
	query := `
		SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
		       f.first_name, f.last_name, f.phone,
		       t.first_name, t.last_name, t.phone
		FROM messages AS m
		JOIN users AS f ON m.from_username = f.username
		JOIN users AS t ON m.to_username = t.username
		WHERE m.id = $1
	`

	var msg model.Message
	var from, to model.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.FromUsername,
		&msg.ToUsername,
		&msg.Body,
		&msg.SentAt,
		&msg.ReadAt,
		&from.FirstName,
		&from.LastName,
		&from.Phone,
		&to.FirstName,
		&to.LastName,
		&to.Phone,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message by id: %w", err)
	}

	from.Username = msg.FromUsername
	to.Username = msg.ToUsername
	msg.FromUser = &from
	msg.ToUser = &to

	return &msg, nil
}

// MarkMessageRead stamps read_at with the current time and returns the
// stamp. The update is unconditional: re-reading an already-read
// message re-stamps it (last write wins on a now() timestamp).
func (r *Repository) MarkMessageRead(ctx context.Context, id string) (time.Time, error) {
	query := `
		UPDATE messages
		SET read_at = now()
		WHERE id = $1
		RETURNING read_at
	`

	var readAt time.Time
	err := r.pool.QueryRow(ctx, query, id).Scan(&readAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, ErrMessageNotFound
		}
		return time.Time{}, fmt.Errorf("failed to mark message read: %w", err)
	}

	return readAt, nil
}

// ListMessagesFrom returns all messages sent by the given user, with
// the recipient profile projected.
func (r *Repository) ListMessagesFrom(ctx context.Context, username string) ([]model.Message, error) {
	query := `
		SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
		       t.first_name, t.last_name, t.phone
		FROM messages AS m
		JOIN users AS t ON m.to_username = t.username
		WHERE m.from_username = $1
		ORDER BY m.sent_at
	`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages from %s: %w", username, err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var msg model.Message
		var to model.Profile
		if err := rows.Scan(
			&msg.ID,
			&msg.FromUsername,
			&msg.ToUsername,
			&msg.Body,
			&msg.SentAt,
			&msg.ReadAt,
			&to.FirstName,
			&to.LastName,
			&to.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		to.Username = msg.ToUsername
		msg.ToUser = &to
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message rows: %w", err)
	}

	return messages, nil
}

// ListMessagesTo returns all messages received by the given user, with
// the sender profile projected.
func (r *Repository) ListMessagesTo(ctx context.Context, username string) ([]model.Message, error) {
	query := `
		SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
		       f.first_name, f.last_name, f.phone
		FROM messages AS m
		JOIN users AS f ON m.from_username = f.username
		WHERE m.to_username = $1
		ORDER BY m.sent_at
	`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages to %s: %w", username, err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var msg model.Message
		var from model.Profile
		if err := rows.Scan(
			&msg.ID,
			&msg.FromUsername,
			&msg.ToUsername,
			&msg.Body,
			&msg.SentAt,
			&msg.ReadAt,
			&from.FirstName,
			&from.LastName,
			&from.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		from.Username = msg.FromUsername
		msg.FromUser = &from
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message rows: %w", err)
	}

	return messages, nil
}
