package model

import "time"

// Message is a directed message between two users. ReadAt stays nil
// until the recipient marks the message read; SentAt is immutable.
type Message struct {
	ID           string     `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`

	// Sender and recipient public projections, populated by joins.
	// Listings project only the counterpart side; the other stays nil
	// and is omitted from responses.
	FromUser *Profile `json:"from_user,omitempty"`
	ToUser   *Profile `json:"to_user,omitempty"`
}

// IsParticipant reports whether username is the sender or recipient.
// A message is visible only to its participants.
func (m *Message) IsParticipant(username string) bool {
	return username == m.FromUsername || username == m.ToUsername
}

// IsRecipient reports whether username is the recipient. Only the
// recipient may mark a message read.
func (m *Message) IsRecipient(username string) bool {
	return username == m.ToUsername
}
