package interfaces

import (
	"context"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for the payment ledger.
//
// Create records a charge attempt before the gateway is invoked.
// UpdateChargeStatus flips a single row in place; the workflow's success path
// uses IChargeTransaction so the row flips atomically with the invoice.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListAll(ctx context.Context) ([]entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
	UpdateChargeStatus(ctx context.Context, id string, chargeSuccess bool, chargeDate time.Time) (entities.Payment, error)
}
