package domain

import "errors"

// Authentication and session errors. The HTTP layer collapses the token
// failure kinds into a single unauthenticated response so clients cannot
// probe which check failed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionState     = errors.New("session is not active")
	ErrRotationConflict = errors.New("session was rotated concurrently")

	ErrTokenMalformed = errors.New("access token is malformed")
	ErrTokenSignature = errors.New("access token signature is invalid")
	ErrTokenExpired   = errors.New("access token is expired")

	ErrRateLimited = errors.New("too many attempts")
)

// Business entity errors.
var (
	ErrContractorNotFound  = errors.New("contractor not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
