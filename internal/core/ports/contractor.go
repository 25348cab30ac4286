package ports

import (
	"context"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

// ListOptions controls pagination and sorting of list queries.
type ListOptions struct {
	Page     int
	PageSize int
	SortBy   string
	SortDesc bool
}

// ContractorRepository defines the persistence contract for contractors.
type ContractorRepository interface {
	Insert(ctx context.Context, contractor *domain.Contractor) (*domain.Contractor, error)
	FindByID(ctx context.Context, id string) (*domain.Contractor, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Contractor, int64, error)
	Update(ctx context.Context, contractor *domain.Contractor) error
	Delete(ctx context.Context, id string) error
}

// ContractorService exposes contractor CRUD to the transport layer.
type ContractorService interface {
	Create(ctx context.Context, name string) (*domain.Contractor, error)
	Get(ctx context.Context, id string) (*domain.Contractor, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Contractor, int64, error)
	Rename(ctx context.Context, id, name string) (*domain.Contractor, error)
	Delete(ctx context.Context, id string) error
}
