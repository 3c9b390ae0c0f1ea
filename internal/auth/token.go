package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/shared"
)

// Purpose restricts a token to a single use-case. Validate rejects tokens
// presented for a different purpose than they were issued with, so a
// password-reset token can never stand in for a login session.
type Purpose string

const (
	PurposeLogin         Purpose = "login"
	PurposePasswordReset Purpose = "password_reset"
	PurposeEmailVerify   Purpose = "email_verify"
)

// Claims is the signed payload of a TaskForge bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Purpose Purpose `json:"purpose"`
}

// SubjectID returns the token subject as a user id.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and validates HMAC-signed time-bound tokens. The
// signing secret is fixed at construction and never mutated, so a single
// instance is safe for unsynchronized concurrent use. The clock is injectable
// for deterministic expiry tests.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService constructs a TokenService. A nil now defaults to time.Now.
func NewTokenService(secret []byte, issuer string, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{secret: secret, issuer: issuer, now: now}
}

// Issue signs a token asserting {subject, purpose, issued-at, expires-at}.
// Every claim is covered by the signature; altering any of them invalidates
// the token.
func (s *TokenService) Issue(subject uuid.UUID, purpose Purpose, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string against the expected purpose.
// Failures map to shared.ErrTokenExpired, shared.ErrBadSignature,
// shared.ErrTokenMalformed, or shared.ErrWrongPurpose; callers treat all of
// them as unauthenticated but may log the distinction.
func (s *TokenService) Validate(tokenString string, expected Purpose) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, shared.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, shared.ErrBadSignature
		default:
			return nil, shared.ErrTokenMalformed
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, shared.ErrTokenMalformed
	}
	if claims.Purpose != expected {
		return nil, shared.ErrWrongPurpose
	}
	return claims, nil
}
