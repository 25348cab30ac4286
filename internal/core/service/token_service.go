package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

// refreshSecretSize is the entropy of a raw refresh secret in bytes.
const refreshSecretSize = 32

const defaultRefreshTTL = 30 * 24 * time.Hour

// TokenService manages refresh sessions: issue, lookup, rotation, revocation,
// and expired-row cleanup. Only the SHA-256 hash of a refresh secret ever
// reaches the store.
type TokenService struct {
	store      ports.SessionStore
	refreshTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

func NewTokenService(store ports.SessionStore, refreshTTL time.Duration, logger zerolog.Logger) *TokenService {
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		store:      store,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// IssueSession creates a session for the user and returns the persisted row
// together with the raw refresh secret. The raw value is never recoverable
// after this call.
func (s *TokenService) IssueSession(ctx context.Context, userID string) (*domain.Session, string, error) {
	var secret [refreshSecretSize]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return nil, "", fmt.Errorf("generate refresh secret: %w", err)
	}
	raw := base64.RawURLEncoding.EncodeToString(secret[:])

	now := s.now().UTC()
	session := &domain.Session{
		ID:                uuid.NewString(),
		UserID:            userID,
		RefreshHash:       HashRefreshSecret(raw),
		RefreshExpiration: now.Add(s.refreshTTL),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Insert(ctx, session); err != nil {
		return nil, "", fmt.Errorf("insert session: %w", err)
	}

	s.logger.Debug().Str("session_id", session.ID).Str("user_id", userID).Msg("session issued")
	return session, raw, nil
}

// FindActiveSessionBySecret resolves a raw refresh secret to its session.
// Unknown secrets and Expired/Revoked sessions both return
// domain.ErrSessionNotFound so a caller cannot tell whether the secret ever
// existed.
func (s *TokenService) FindActiveSessionBySecret(ctx context.Context, rawSecret string) (*domain.Session, error) {
	if rawSecret == "" {
		return nil, domain.ErrSessionNotFound
	}

	hash := HashRefreshSecret(rawSecret)
	session, err := s.store.FindByRefreshHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	// The store already matched on hash; recheck with a constant-time
	// comparison so lookup timing never correlates with partial matches.
	if subtle.ConstantTimeCompare([]byte(session.RefreshHash), []byte(hash)) != 1 {
		return nil, domain.ErrSessionNotFound
	}

	if !session.Active(s.now().UTC()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Rotate extends an active session's refresh expiration to now + TTL. The
// update is conditional on the expiration the caller observed, so of two
// concurrent rotations exactly one succeeds and the other gets
// domain.ErrRotationConflict.
func (s *TokenService) Rotate(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	now := s.now().UTC()
	if !session.Active(now) {
		return nil, domain.ErrSessionState
	}

	updated, err := s.store.UpdateExpiration(ctx, session.ID, session.RefreshExpiration, now.Add(s.refreshTTL), false)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("session_id", session.ID).Time("refresh_expiration", updated.RefreshExpiration).Msg("session rotated")
	return updated, nil
}

// Revoke forces the session's expiration into the past. Revoking a session
// that is already Expired or Revoked is a no-op, not an error.
func (s *TokenService) Revoke(ctx context.Context, session *domain.Session) error {
	now := s.now().UTC()
	if !session.Active(now) {
		return nil
	}

	_, err := s.store.UpdateExpiration(ctx, session.ID, session.RefreshExpiration, now.Add(-time.Second), true)
	if err != nil {
		// A concurrent rotation moved the expiration out from under us;
		// re-reading would race again, and the caller asked for the
		// session to die, so surface the conflict.
		return err
	}

	s.logger.Info().Str("session_id", session.ID).Str("user_id", session.UserID).Msg("session revoked")
	return nil
}

// CleanupExpired deletes every session whose refresh expiration has passed.
// Safe to run concurrently with lookups and rotations: it only removes rows
// that are already invalid for any reader.
func (s *TokenService) CleanupExpired(ctx context.Context) (int64, error) {
	count, err := s.store.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int64("deleted", count).Msg("expired sessions cleaned up")
	}
	return count, nil
}

// HashRefreshSecret returns the hex-encoded SHA-256 digest of a raw refresh
// secret. This is the only form of the secret that may be persisted.
func HashRefreshSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
