package model

import "testing"

func TestMessage_IsParticipant(t *testing.T) {
	m := &Message{FromUsername: "alice", ToUsername: "bob"}

	tests := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"bob", true},
		{"carol", false},
		{"", false},
	}

	for _, test := range tests {
		if got := m.IsParticipant(test.username); got != test.want {
			t.Errorf("IsParticipant(%q) = %v, want %v", test.username, got, test.want)
		}
	}
}

func TestMessage_IsRecipient(t *testing.T) {
	m := &Message{FromUsername: "alice", ToUsername: "bob"}

	if m.IsRecipient("alice") {
		t.Error("sender must not count as recipient")
	}
	if !m.IsRecipient("bob") {
		t.Error("expected recipient to match")
	}
	if m.IsRecipient("carol") {
		t.Error("third party must not count as recipient")
	}
}

func TestMessage_SelfMessage(t *testing.T) {
	// Self-messages are permitted; the sender is also the recipient.
	m := &Message{FromUsername: "alice", ToUsername: "alice"}

	if !m.IsParticipant("alice") || !m.IsRecipient("alice") {
		t.Error("self-message should treat the user as both participant and recipient")
	}
}
