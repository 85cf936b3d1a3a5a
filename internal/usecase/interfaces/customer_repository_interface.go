package interfaces

import (
	"context"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
)

// ICustomerRepository abstracts persistence for Customer.
//
// A miss on GetByID returns a zero-value Customer with a nil error; the
// usecase layer maps that to its not-found sentinel.

type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	ListAll(ctx context.Context) ([]entities.Customer, error)
}
