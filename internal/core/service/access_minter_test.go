package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

func TestAccessMinter_MintVerifyRoundtrip(t *testing.T) {
	m := NewAccessMinter("signing-key", 15*time.Minute)

	token, err := m.Mint("user-42")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	subject, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "user-42" {
		t.Fatalf("expected subject user-42, got %q", subject)
	}
}

func TestAccessMinter_Expired(t *testing.T) {
	m := NewAccessMinter("signing-key", 15*time.Minute)

	token, err := m.Mint("user-42")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	m.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if _, err := m.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAccessMinter_BadSignature(t *testing.T) {
	m := NewAccessMinter("signing-key", 15*time.Minute)
	other := NewAccessMinter("other-key", 15*time.Minute)

	token, err := other.Mint("user-42")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestAccessMinter_Tampered(t *testing.T) {
	m := NewAccessMinter("signing-key", 15*time.Minute)

	token, err := m.Mint("user-42")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + ".eyJzdWIiOiJ1c2VyLTEifQ." + parts[2]
	if _, err := m.Verify(tampered); err == nil {
		t.Fatalf("tampered token must not verify")
	}
}

func TestAccessMinter_Malformed(t *testing.T) {
	m := NewAccessMinter("signing-key", 15*time.Minute)

	if _, err := m.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
