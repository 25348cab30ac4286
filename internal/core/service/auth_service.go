package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

// AuthService implements registration, login, session refresh, and logout on
// top of the identity store, the token service, and the access minter.
type AuthService struct {
	users   ports.IdentityStore
	tokens  ports.TokenService
	minter  ports.AccessTokenManager
	mail    ports.MailEnqueuer
	limiter ports.RateLimiter
}

func NewAuthService(users ports.IdentityStore, tokens ports.TokenService, minter ports.AccessTokenManager, mail ports.MailEnqueuer, limiter ports.RateLimiter) *AuthService {
	return &AuthService{users: users, tokens: tokens, minter: minter, mail: mail, limiter: limiter}
}

// Register creates a new account and queues a verification email.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.mail != nil {
		s.mail.Enqueue(ports.Mail{
			To:      created.Email,
			Subject: "Verify your account",
			Body:    fmt.Sprintf("Hi %s, please verify your account.", created.Username),
		})
	}
	return created, nil
}

// Login authenticates a username/password pair and, on success, issues a
// refresh session plus a fresh access token. A missing user and a wrong
// password surface as distinct errors; the handler maps them to the responses
// the API contract promises.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, "login:"+username); err != nil {
			return nil, err
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, rawSecret, err := s.tokens.IssueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	access, err := s.minter.Mint(user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		User:          user,
		Session:       session,
		AccessToken:   access,
		RefreshSecret: rawSecret,
	}, nil
}

// Refresh validates a raw refresh secret, extends the session, and mints a
// fresh access token. The refresh secret itself is unchanged; rotation resets
// the expiration clock.
func (s *AuthService) Refresh(ctx context.Context, rawSecret string) (*ports.LoginResult, error) {
	session, err := s.tokens.FindActiveSessionBySecret(ctx, rawSecret)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, "refresh:"+session.ID); err != nil {
			return nil, err
		}
	}

	rotated, err := s.tokens.Rotate(ctx, session)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, rotated.UserID)
	if err != nil {
		return nil, err
	}

	access, err := s.minter.Mint(user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		User:          user,
		Session:       rotated,
		AccessToken:   access,
		RefreshSecret: rawSecret,
	}, nil
}

// Logout revokes the session behind the refresh secret. Logging out with an
// unknown or already-dead secret succeeds silently.
func (s *AuthService) Logout(ctx context.Context, rawSecret string) error {
	session, err := s.tokens.FindActiveSessionBySecret(ctx, rawSecret)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return s.tokens.Revoke(ctx, session)
}

// CurrentUser resolves the subject of a verified access token.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
