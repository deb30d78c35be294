// Package auth provides token issuance, password hashing, and the
// request identity context.
package auth

import "context"

// Identity is the username asserted by a verified token, attached to
// a request for the duration of its handling. It asserts identity
// only; it carries no authorization scope.
type Identity struct {
	Username string
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityContextKey is the context key for storing Identity.
const identityContextKey contextKey = "identity"

// ContextWithIdentity adds an Identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext retrieves the Identity from the context.
// Returns nil if the request carried no valid token.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// UsernameFromContext is a convenience function to get the
// authenticated username. Returns empty string if not authenticated.
func UsernameFromContext(ctx context.Context) string {
	id := IdentityFromContext(ctx)
	if id == nil {
		return ""
	}
	return id.Username
}
