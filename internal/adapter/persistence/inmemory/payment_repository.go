package inmemory

import (
	"context"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	store *Store
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := s.payments[p.ID]; !exists {
		s.paymentOrder = append(s.paymentOrder, p.ID)
	}
	s.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.payments[id], nil
}

func (r *PaymentRepository) ListAll(_ context.Context) ([]entities.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := make([]entities.Payment, 0, len(s.paymentOrder))
	for _, id := range s.paymentOrder {
		payments = append(payments, s.payments[id])
	}
	return payments, nil
}

func (r *PaymentRepository) ListByInvoiceID(_ context.Context, invoiceID string) ([]entities.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := make([]entities.Payment, 0)
	for _, id := range s.paymentOrder {
		if p := s.payments[id]; p.InvoiceID == invoiceID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (r *PaymentRepository) UpdateChargeStatus(_ context.Context, id string, chargeSuccess bool, chargeDate time.Time) (entities.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return entities.Payment{}, nil
	}
	p.ChargeSuccess = chargeSuccess
	p.ChargeDate = chargeDate
	s.payments[id] = p
	return p, nil
}
