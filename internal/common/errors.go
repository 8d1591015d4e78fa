// Package common defines shared constants and sentinel errors used across
// client and server layers of TaskMaster. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("you do not have permission to access this task")

	// Auth errors. Every token failure wraps ErrInvalidToken together with
	// exactly one of the kinds below.
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMissingClaim = errors.New("token missing required claim")
)
