package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that is malformed, carries a bad
// signature, or has expired. All three are treated identically.
var ErrInvalidToken = errors.New("invalid token")

// Claims asserts exactly one identity claim, the subject's username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies compact identity tokens (JWT,
// HS256). It is stateless; the signing secret is injected at
// construction.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and
// token lifetime.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token asserting the given username.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify validates the signature and expiry of a token and returns
// the asserted username. Malformed input, a bad signature, and expiry
// all surface as ErrInvalidToken; invalidity is data at this layer,
// not a fault.
func (s *TokenService) Verify(tokenString string) (string, error) {
	username, _, err := s.VerifyWithExpiry(tokenString)
	return username, err
}

// VerifyWithExpiry validates a token like Verify and also returns its
// expiry, so callers caching the verification result can bound the
// cache entry to the token's remaining lifetime.
func (s *TokenService) VerifyWithExpiry(tokenString string) (string, time.Time, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", time.Time{}, ErrInvalidToken
	}

	if claims.Username == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, ErrInvalidToken
	}

	return claims.Username, claims.ExpiresAt.Time, nil
}
