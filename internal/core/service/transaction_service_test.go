package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

type stubTransactionRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Transaction
	seq  int
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{rows: make(map[string]*domain.Transaction)}
}

func cloneTransaction(tx *domain.Transaction) *domain.Transaction {
	cp := *tx
	return &cp
}

func (r *stubTransactionRepo) Insert(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	tx.ID = fmt.Sprintf("tx-%d", r.seq)
	r.rows[tx.ID] = cloneTransaction(tx)
	return cloneTransaction(tx), nil
}

func (r *stubTransactionRepo) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return cloneTransaction(tx), nil
}

func (r *stubTransactionRepo) List(ctx context.Context, filter ports.TransactionFilter, opts ports.ListOptions) ([]domain.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Transaction
	for _, tx := range r.rows {
		if filter.ContractorID != "" && tx.ContractorID != filter.ContractorID {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		out = append(out, *cloneTransaction(tx))
	}
	return out, int64(len(out)), nil
}

func (r *stubTransactionRepo) Update(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[tx.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	r.rows[tx.ID] = cloneTransaction(tx)
	return nil
}

func (r *stubTransactionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(r.rows, id)
	return nil
}

type stubContractorRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Contractor
	seq  int
}

func newStubContractorRepo() *stubContractorRepo {
	return &stubContractorRepo{rows: make(map[string]*domain.Contractor)}
}

func (r *stubContractorRepo) Insert(ctx context.Context, c *domain.Contractor) (*domain.Contractor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("ctr-%d", r.seq)
	cp := *c
	r.rows[c.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubContractorRepo) FindByID(ctx context.Context, id string) (*domain.Contractor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrContractorNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubContractorRepo) List(ctx context.Context, opts ports.ListOptions) ([]domain.Contractor, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Contractor
	for _, c := range r.rows {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubContractorRepo) Update(ctx context.Context, c *domain.Contractor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; !ok {
		return domain.ErrContractorNotFound
	}
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *stubContractorRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrContractorNotFound
	}
	delete(r.rows, id)
	return nil
}

func newTransactionFixture(t *testing.T) (*TransactionService, string) {
	t.Helper()
	contractors := newStubContractorRepo()
	contractor, err := contractors.Insert(context.Background(), &domain.Contractor{Name: "Acme Ltd"})
	if err != nil {
		t.Fatalf("insert contractor: %v", err)
	}
	return NewTransactionService(newStubTransactionRepo(), contractors), contractor.ID
}

func TestTransactionService_Create(t *testing.T) {
	svc, contractorID := newTransactionFixture(t)

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{
		ContractorID: contractorID,
		Amount:       149.90,
		Currency:     domain.CurrencyEUR,
		Method:       domain.MethodCardPayment,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx.Status != domain.TransactionSent {
		t.Fatalf("expected initial status sent, got %s", tx.Status)
	}
	if tx.TrackingID == "" {
		t.Fatalf("expected a generated tracking id")
	}
	if tx.SentAt == nil {
		t.Fatalf("expected SentAt to be stamped")
	}
}

func TestTransactionService_Create_UnknownContractor(t *testing.T) {
	svc, _ := newTransactionFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateTransactionInput{
		ContractorID: "ghost",
		Amount:       10,
		Currency:     domain.CurrencyUSD,
		Method:       domain.MethodTransaction,
	})
	if !errors.Is(err, domain.ErrContractorNotFound) {
		t.Fatalf("expected ErrContractorNotFound, got %v", err)
	}
}

func TestTransactionService_Advance(t *testing.T) {
	svc, contractorID := newTransactionFixture(t)

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{
		ContractorID: contractorID,
		Amount:       10,
		Currency:     domain.CurrencyUSD,
		Method:       domain.MethodOnlineTransfer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tx, err = svc.Advance(context.Background(), tx.ID, domain.TransactionReceived)
	if err != nil {
		t.Fatalf("Advance to received: %v", err)
	}
	if tx.Status != domain.TransactionReceived || tx.ReceivedAt == nil {
		t.Fatalf("received transition not recorded: %+v", tx)
	}

	tx, err = svc.Advance(context.Background(), tx.ID, domain.TransactionPayed)
	if err != nil {
		t.Fatalf("Advance to payed: %v", err)
	}
	if tx.Status != domain.TransactionPayed || tx.PayedAt == nil {
		t.Fatalf("payed transition not recorded: %+v", tx)
	}
}

func TestTransactionService_Advance_IllegalMove(t *testing.T) {
	svc, contractorID := newTransactionFixture(t)

	tx, err := svc.Create(context.Background(), ports.CreateTransactionInput{
		ContractorID: contractorID,
		Amount:       10,
		Currency:     domain.CurrencyUSD,
		Method:       domain.MethodTransaction,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Skipping "received" is not allowed.
	if _, err := svc.Advance(context.Background(), tx.ID, domain.TransactionPayed); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// Status moves never go backwards.
	if _, err := svc.Advance(context.Background(), tx.ID, domain.TransactionSent); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestContractorService_RoundTrip(t *testing.T) {
	svc := NewContractorService(newStubContractorRepo())

	contractor, err := svc.Create(context.Background(), "Acme Ltd")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	renamed, err := svc.Rename(context.Background(), contractor.ID, "Acme Holdings")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name != "Acme Holdings" {
		t.Fatalf("rename not applied: %+v", renamed)
	}

	if err := svc.Delete(context.Background(), contractor.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), contractor.ID); !errors.Is(err, domain.ErrContractorNotFound) {
		t.Fatalf("expected ErrContractorNotFound after delete, got %v", err)
	}
}

func TestNormalizeListOptions(t *testing.T) {
	opts := normalizeListOptions(ports.ListOptions{Page: 0, PageSize: 500})
	if opts.Page != 1 || opts.PageSize != 20 {
		t.Fatalf("unexpected normalization: %+v", opts)
	}
}
