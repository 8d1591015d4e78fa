// Package auth holds the credential primitives of the server: password
// hashing and signed session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec issues and verifies HS256 session tokens whose subject is the
// user's email. The secret is injected so tests and rotations never touch
// global state.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secretKey []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secretKey, ttl: ttl, now: time.Now}
}

// TTL is the lifetime used by IssueDefault.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// IssueDefault issues a token for subject with the configured lifetime.
func (c *TokenCodec) IssueDefault(subject string) (string, error) {
	return c.Issue(subject, c.ttl)
}

// Issue signs a token for subject expiring ttl from now.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the subject claim.
//
// Every failure wraps common.ErrInvalidToken plus one kind:
// ErrTokenMalformed, ErrTokenBadSignature, ErrTokenExpired or
// ErrTokenMissingClaim.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", tokenError(classify(err))
	}

	if !token.Valid {
		return "", tokenError(common.ErrTokenMalformed)
	}

	if claims.Subject == "" {
		return "", tokenError(common.ErrTokenMissingClaim)
	}

	return claims.Subject, nil
}

func tokenError(kind error) error {
	return fmt.Errorf("%w: %w", common.ErrInvalidToken, kind)
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return common.ErrTokenMissingClaim
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.ErrTokenBadSignature
	default:
		return common.ErrTokenMalformed
	}
}
