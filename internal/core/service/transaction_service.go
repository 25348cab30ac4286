package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

// TransactionService books and advances money transactions.
type TransactionService struct {
	repo        ports.TransactionRepository
	contractors ports.ContractorRepository
}

func NewTransactionService(repo ports.TransactionRepository, contractors ports.ContractorRepository) *TransactionService {
	return &TransactionService{repo: repo, contractors: contractors}
}

// Create books a new transaction in the "sent" state against an existing
// contractor.
func (s *TransactionService) Create(ctx context.Context, input ports.CreateTransactionInput) (*domain.Transaction, error) {
	if _, err := s.contractors.FindByID(ctx, input.ContractorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := &domain.Transaction{
		ContractorID: input.ContractorID,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Status:       domain.TransactionSent,
		Method:       input.Method,
		TrackingID:   input.TrackingID,
		SentAt:       &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if tx.TrackingID == "" {
		tx.TrackingID = uuid.NewString()
	}
	return s.repo.Insert(ctx, tx)
}

func (s *TransactionService) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TransactionService) List(ctx context.Context, filter ports.TransactionFilter, opts ports.ListOptions) ([]domain.Transaction, int64, error) {
	return s.repo.List(ctx, filter, normalizeListOptions(opts))
}

// Advance moves a transaction to the next status and stamps the matching
// timestamp. Illegal moves are rejected before any write.
func (s *TransactionService) Advance(ctx context.Context, id string, next domain.TransactionStatus) (*domain.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !tx.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	tx.Status = next
	tx.UpdatedAt = now
	switch next {
	case domain.TransactionReceived:
		tx.ReceivedAt = &now
	case domain.TransactionPayed:
		tx.PayedAt = &now
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
