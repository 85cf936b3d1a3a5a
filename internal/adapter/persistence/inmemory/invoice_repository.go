package inmemory

import (
	"context"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/google/uuid"
)

type InvoiceRepository struct {
	store *Store
}

var _ interfaces.IInvoiceRepository = (*InvoiceRepository)(nil)

func (r *InvoiceRepository) Create(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = entities.InvoiceStatusPending
	}
	if _, exists := s.invoices[inv.ID]; !exists {
		s.invoiceOrder = append(s.invoiceOrder, inv.ID)
	}
	s.invoices[inv.ID] = inv
	return inv, nil
}

func (r *InvoiceRepository) GetByID(_ context.Context, id string) (entities.Invoice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.invoices[id], nil
}

func (r *InvoiceRepository) ListAll(_ context.Context) ([]entities.Invoice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]entities.Invoice, 0, len(s.invoiceOrder))
	for _, id := range s.invoiceOrder {
		invoices = append(invoices, s.invoices[id])
	}
	return invoices, nil
}

func (r *InvoiceRepository) ListByStatus(_ context.Context, status entities.InvoiceStatus) ([]entities.Invoice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]entities.Invoice, 0)
	for _, id := range s.invoiceOrder {
		if inv := s.invoices[id]; inv.Status == status {
			invoices = append(invoices, inv)
		}
	}
	return invoices, nil
}

func (r *InvoiceRepository) UpdateStatus(_ context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return entities.Invoice{}, nil
	}
	inv.Status = status
	s.invoices[id] = inv
	return inv, nil
}
