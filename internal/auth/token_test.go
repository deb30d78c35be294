package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	username, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if username != "alice" {
		t.Errorf("expected username %q, got %q", "alice", username)
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", -1*time.Second)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Expired tokens are treated identically to malformed ones.
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService("right-secret", time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 JWT segments, got %d", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour)

	tests := []string{
		"",
		"not.a.jwt",
		"garbage",
		"a.b",
	}

	for _, input := range tests {
		if _, err := svc.Verify(input); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", input, err)
		}
	}
}

func TestTokenService_VerifyWithExpiry(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)
	before := time.Now()
	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	username, expiry, err := svc.VerifyWithExpiry(token)
	if err != nil {
		t.Fatalf("VerifyWithExpiry failed: %v", err)
	}
	if username != "alice" {
		t.Errorf("username = %q, want alice", username)
	}

	remaining := expiry.Sub(before)
	if remaining < 59*time.Minute || remaining > 61*time.Minute {
		t.Errorf("expiry %v not about an hour out (remaining %v)", expiry, remaining)
	}

	if _, _, err := svc.VerifyWithExpiry("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage input, got %v", err)
	}
}
