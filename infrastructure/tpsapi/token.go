package tpsapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	serviceIssuer  = "tps-admin"
	serviceSubject = "tps-admin-ui"
)

// TokenSource signs short-lived HS256 service tokens for the TPS API.
type TokenSource struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSource returns nil for an empty secret so callers can pass the
// result straight to NewClient.
func NewTokenSource(secret string, ttl time.Duration) *TokenSource {
	if secret == "" {
		return nil
	}
	return &TokenSource{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Token signs a fresh token.
func (s *TokenSource) Token() (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", errors.New("token source has no secret")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    serviceIssuer,
		Subject:   serviceSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
