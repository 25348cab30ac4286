package ports

import (
	"context"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

// IdentityStore defines the persistence contract for account records.
type IdentityStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
