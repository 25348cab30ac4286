package ports

import (
	"context"
	"time"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

// SessionStore defines the persistence contract for refresh sessions.
//
// UpdateExpiration is conditional on the expiration the caller last observed:
// it must return domain.ErrRotationConflict when the row no longer carries
// prevExpiration, so two racing rotations cannot both extend the session from
// the same prior state.
type SessionStore interface {
	Insert(ctx context.Context, session *domain.Session) error
	FindByRefreshHash(ctx context.Context, hash string) (*domain.Session, error)
	UpdateExpiration(ctx context.Context, id string, prevExpiration, newExpiration time.Time, revoked bool) (*domain.Session, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
