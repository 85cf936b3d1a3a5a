package interfaces

import (
	"context"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
)

// IInvoiceRepository abstracts persistence for Invoice.
//
// The billing workflow needs to:
//   - snapshot every invoice in a given status for a batch run
//   - re-fetch a single invoice to guard against double charging
//   - flip the status PENDING -> PAID (single-row update; the paired
//     payment+invoice commit goes through IChargeTransaction instead)

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	ListAll(ctx context.Context) ([]entities.Invoice, error)
	ListByStatus(ctx context.Context, status entities.InvoiceStatus) ([]entities.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error)
}
