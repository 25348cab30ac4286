package domain

import (
	"testing"
	"time"
)

func TestSessionState(t *testing.T) {
	now := time.Now().UTC()
	s := &Session{RefreshExpiration: now.Add(time.Hour)}

	if got := s.State(now); got != SessionActive {
		t.Fatalf("expected active, got %s", got)
	}
	if got := s.State(now.Add(2 * time.Hour)); got != SessionExpired {
		t.Fatalf("expected expired, got %s", got)
	}

	s.Revoked = true
	s.RefreshExpiration = now.Add(-time.Second)
	if got := s.State(now); got != SessionRevoked {
		t.Fatalf("expected revoked, got %s", got)
	}
	if s.Active(now) {
		t.Fatalf("revoked session must not be active")
	}
}

func TestTransactionStatusTransitions(t *testing.T) {
	if !TransactionSent.CanTransitionTo(TransactionReceived) {
		t.Fatalf("sent -> received should be allowed")
	}
	if !TransactionReceived.CanTransitionTo(TransactionPayed) {
		t.Fatalf("received -> payed should be allowed")
	}
	if TransactionSent.CanTransitionTo(TransactionPayed) {
		t.Fatalf("sent -> payed should be rejected")
	}
	if TransactionPayed.CanTransitionTo(TransactionSent) {
		t.Fatalf("payed is terminal")
	}
}
