// Package token issues and verifies the bearer tokens of the shop. A token
// carries the subject username and an absolute expiry; there is no server
// side revocation, a signed token stays valid until it expires.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Service struct {
	Secret []byte
	Method jwt.SigningMethod
	TTL    time.Duration
}

func New(secret []byte, algorithm string, ttl time.Duration) (*Service, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("algorithm %q is not an HMAC method", algorithm)
	}
	return &Service{Secret: secret, Method: method, TTL: ttl}, nil
}

// Issue signs a token for subject expiring at now+ttl. ttl <= 0 falls back
// to the configured default.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.TTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	t := jwt.NewWithClaims(s.Method, claims)
	return t.SignedString(s.Secret)
}

// IssueExpiring signs a token with an explicit absolute expiry. Used by
// tests to probe the expiry boundary.
func (s *Service) IssueExpiring(subject string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	t := jwt.NewWithClaims(s.Method, claims)
	return t.SignedString(s.Secret)
}

// Verify checks signature and expiry and returns the subject claim. Any
// failure collapses into ErrInvalidToken; the caller has no reason to
// distinguish a forged token from an expired one.
func (s *Service) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{s.Method.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
