package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/messagely/messagely/internal/auth"
)

// TokenVerifier validates a token and returns the asserted username
// and the token's expiry. Implemented by auth.TokenService.
type TokenVerifier interface {
	VerifyWithExpiry(token string) (string, time.Time, error)
}

// IdentityCache caches resolved identities keyed by a token quick-hash.
// Implemented by cache.Cache; nil disables caching. The ttl bounds the
// entry so a cached identity cannot outlive its token.
type IdentityCache interface {
	GetIdentity(ctx context.Context, cacheKey string) (string, error)
	SetIdentity(ctx context.Context, cacheKey, username string, ttl time.Duration) error
}

// AuthenticateConfig holds configuration for the authenticator middleware.
type AuthenticateConfig struct {
	Logger   *slog.Logger
	Verifier TokenVerifier
	Cache    IdentityCache
}

// Authenticate returns the request authenticator. It runs on every
// request: it extracts a bearer token from the Authorization header,
// verifies it, and attaches the resolved identity to the request
// context.
//
// This middleware never rejects. A missing or invalid token means the
// request proceeds with no identity attached; rejection belongs to
// the guards, because some routes are public and must not be
// penalized for a garbage token.
func Authenticate(cfg AuthenticateConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			var cacheKey string
			var cacheHit bool
			var username string

			if cfg.Cache != nil {
				cacheKey = auth.QuickHash(token)
				username, _ = cfg.Cache.GetIdentity(r.Context(), cacheKey)
				cacheHit = username != ""
			}

			if username == "" {
				verified, expiry, err := cfg.Verifier.VerifyWithExpiry(token)
				if err != nil {
					// Invalid token: proceed with no identity.
					cfg.Logger.Debug("ignoring invalid token",
						slog.String("request_id", GetRequestID(r.Context())),
					)
					next.ServeHTTP(w, r)
					return
				}
				username = verified

				if cfg.Cache != nil {
					if remaining := time.Until(expiry); remaining > 0 {
						_ = cfg.Cache.SetIdentity(r.Context(), cacheKey, username, remaining)
					}
				}
			}

			cfg.Logger.Info("request authenticated",
				slog.String("username", username),
				slog.Bool("cache_hit", cacheHit),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithIdentity(r.Context(), &auth.Identity{Username: username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the session token from the
// Authorization header. Returns empty string if absent.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
