// Package common contains shared constants and sentinel errors used across
// TaskMaster components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// TokenType is the token_type value returned on login and the scheme
// expected in the Authorization header.
const TokenType = "bearer"
