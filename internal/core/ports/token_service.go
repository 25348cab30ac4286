package ports

import (
	"context"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

// TokenService manages the lifecycle of refresh sessions.
type TokenService interface {
	// IssueSession creates a session for the user and returns the row plus
	// the one-time-visible raw refresh secret.
	IssueSession(ctx context.Context, userID string) (*domain.Session, string, error)
	// FindActiveSessionBySecret resolves a raw refresh secret to its active
	// session. Unknown secrets and dead sessions both come back as
	// domain.ErrSessionNotFound.
	FindActiveSessionBySecret(ctx context.Context, rawSecret string) (*domain.Session, error)
	// Rotate extends an active session's refresh window in place.
	Rotate(ctx context.Context, session *domain.Session) (*domain.Session, error)
	// Revoke forces the session's expiration into the past. Idempotent.
	Revoke(ctx context.Context, session *domain.Session) error
	// CleanupExpired deletes all sessions whose refresh expiration has
	// passed and reports how many rows went away.
	CleanupExpired(ctx context.Context) (int64, error)
}

// AccessTokenManager mints and verifies stateless signed access credentials.
type AccessTokenManager interface {
	Mint(userID string) (string, error)
	Verify(token string) (string, error)
}
