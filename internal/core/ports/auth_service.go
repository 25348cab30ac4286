package ports

import (
	"context"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

// LoginResult carries everything a successful login hands back to the client.
type LoginResult struct {
	User          *domain.User
	Session       *domain.Session
	AccessToken   string
	RefreshSecret string
}

// AuthService implements registration, login, refresh, and logout.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Refresh(ctx context.Context, rawSecret string) (*LoginResult, error)
	Logout(ctx context.Context, rawSecret string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
