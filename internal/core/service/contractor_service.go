package service

import (
	"context"
	"time"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

// ContractorService implements contractor CRUD on top of the repository.
type ContractorService struct {
	repo ports.ContractorRepository
}

func NewContractorService(repo ports.ContractorRepository) *ContractorService {
	return &ContractorService{repo: repo}
}

func (s *ContractorService) Create(ctx context.Context, name string) (*domain.Contractor, error) {
	now := time.Now().UTC()
	return s.repo.Insert(ctx, &domain.Contractor{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *ContractorService) Get(ctx context.Context, id string) (*domain.Contractor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContractorService) List(ctx context.Context, opts ports.ListOptions) ([]domain.Contractor, int64, error) {
	return s.repo.List(ctx, normalizeListOptions(opts))
}

func (s *ContractorService) Rename(ctx context.Context, id, name string) (*domain.Contractor, error) {
	contractor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contractor.Name = name
	contractor.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

func (s *ContractorService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// normalizeListOptions clamps pagination to sane bounds.
func normalizeListOptions(opts ports.ListOptions) ports.ListOptions {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}
	return opts
}
