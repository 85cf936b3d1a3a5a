package inmemory

import (
	"context"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	store *Store
}

var _ interfaces.ICustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(_ context.Context, c entities.Customer) (entities.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, exists := s.customers[c.ID]; !exists {
		s.customerOrder = append(s.customerOrder, c.ID)
	}
	s.customers[c.ID] = c
	return c, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (entities.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.customers[id], nil
}

func (r *CustomerRepository) ListAll(_ context.Context) ([]entities.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]entities.Customer, 0, len(s.customerOrder))
	for _, id := range s.customerOrder {
		customers = append(customers, s.customers[id])
	}
	return customers, nil
}
