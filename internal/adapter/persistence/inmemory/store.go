package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"
)

// Store is the mutex-guarded in-memory backend used for local runs and
// tests. All three tables hang off one lock so the charge commit can touch
// the invoice and the payment as a single critical section, mirroring the
// serializable transaction of the DynamoDB backend.
//
// Insertion order is kept per table so listings are deterministic.

type Store struct {
	mu sync.RWMutex

	customers map[string]entities.Customer
	invoices  map[string]entities.Invoice
	payments  map[string]entities.Payment

	customerOrder []string
	invoiceOrder  []string
	paymentOrder  []string
}

func NewStore() *Store {
	return &Store{
		customers: make(map[string]entities.Customer),
		invoices:  make(map[string]entities.Invoice),
		payments:  make(map[string]entities.Payment),
	}
}

func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{store: s} }
func (s *Store) Invoices() *InvoiceRepository   { return &InvoiceRepository{store: s} }
func (s *Store) Payments() *PaymentRepository   { return &PaymentRepository{store: s} }

// ChargeTransaction returns the atomic commit over this store.
func (s *Store) ChargeTransaction() *ChargeTransaction { return &ChargeTransaction{store: s} }

type ChargeTransaction struct {
	store *Store
}

var _ interfaces.IChargeTransaction = (*ChargeTransaction)(nil)

func (t *ChargeTransaction) CommitSuccessfulCharge(_ context.Context, invoiceID, paymentID string, chargedAt time.Time) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[invoiceID]
	if !ok || inv.Status != entities.InvoiceStatusPending {
		return interfaces.ErrInvoiceStateConflict
	}
	p, ok := s.payments[paymentID]
	if !ok {
		return interfaces.ErrInvoiceStateConflict
	}

	inv.Status = entities.InvoiceStatusPaid
	p.ChargeSuccess = true
	p.ChargeDate = chargedAt
	s.invoices[invoiceID] = inv
	s.payments[paymentID] = p
	return nil
}
