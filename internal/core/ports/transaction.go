package ports

import (
	"context"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

// TransactionFilter narrows transaction list queries.
type TransactionFilter struct {
	ContractorID string
	Status       domain.TransactionStatus
	Method       domain.PaymentMethod
}

// CreateTransactionInput is the service-level payload for booking a transaction.
type CreateTransactionInput struct {
	ContractorID string
	Amount       float64
	Currency     domain.Currency
	Method       domain.PaymentMethod
	TrackingID   string
}

// TransactionRepository defines the persistence contract for transactions.
type TransactionRepository interface {
	Insert(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter, opts ListOptions) ([]domain.Transaction, int64, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id string) error
}

// TransactionService exposes transaction operations to the transport layer.
type TransactionService interface {
	Create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter, opts ListOptions) ([]domain.Transaction, int64, error)
	Advance(ctx context.Context, id string, next domain.TransactionStatus) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
}
