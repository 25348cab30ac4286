package domain

import "time"

// SessionState is the lifecycle state of a refresh session.
type SessionState string

const (
	// SessionActive means the session can still be rotated and its secret
	// still resolves through lookups.
	SessionActive SessionState = "active"
	// SessionExpired means the refresh expiration passed naturally. Not a
	// stored transition; purely a predicate of the clock.
	SessionExpired SessionState = "expired"
	// SessionRevoked means the expiration was forced into the past by an
	// explicit revoke. Indistinguishable from expired for lookups.
	SessionRevoked SessionState = "revoked"
)

// Session is a server-held record of an ongoing login. It stores only the
// SHA-256 hash of the refresh secret; the raw secret is shown to the client
// once at issue time and is never persisted.
type Session struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	RefreshHash       string    `json:"-"`
	RefreshExpiration time.Time `json:"refresh_expiration"`
	Revoked           bool      `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// State reports the session state as observed at now. Revocation is recorded
// on the row so audit can tell a forced expiry from a natural one, even though
// both fail validity checks the same way.
func (s *Session) State(now time.Time) SessionState {
	if s.Revoked {
		return SessionRevoked
	}
	if !now.Before(s.RefreshExpiration) {
		return SessionExpired
	}
	return SessionActive
}

// Active reports whether the session can still be used at now.
func (s *Session) Active(now time.Time) bool {
	return s.State(now) == SessionActive
}
