package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

const defaultAccessTTL = 15 * time.Minute

// AccessMinter mints and verifies short-lived HS256 access tokens. Tokens are
// fully stateless: a claim set {sub, iat, exp} checked purely by signature and
// clock, never persisted. Revoking a refresh session does not recall access
// tokens already in flight, which is why the TTL stays short.
type AccessMinter struct {
	signingKey []byte
	accessTTL  time.Duration
	now        func() time.Time
}

func NewAccessMinter(signingKey string, accessTTL time.Duration) *AccessMinter {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	return &AccessMinter{
		signingKey: []byte(signingKey),
		accessTTL:  accessTTL,
		now:        time.Now,
	}
}

// Mint produces a signed access token for the user. No storage side effect.
func (m *AccessMinter) Mint(userID string) (string, error) {
	now := m.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the embedded subject.
// It does not consult the identity store; existence of the subject is the
// caller's concern.
func (m *AccessMinter) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.signingKey, nil
	}, jwt.WithTimeFunc(m.now))

	switch {
	case err == nil && parsed.Valid:
		if claims.Subject == "" {
			return "", domain.ErrTokenMalformed
		}
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", domain.ErrTokenSignature
	default:
		return "", domain.ErrTokenMalformed
	}
}
