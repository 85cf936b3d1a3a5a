package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrInvoiceStateConflict reports that the commit condition failed: the
// invoice was no longer PENDING when the transaction ran. The workflow maps
// it to its already-paid sentinel, which is how the loser of a concurrent
// double charge observes the conflict.
var ErrInvoiceStateConflict = errors.New("invoice is not pending anymore")

// IChargeTransaction is the atomic two-row commit of a confirmed charge:
// payment row flips to charge_success=true with the confirmation timestamp
// and the invoice flips to PAID, together or not at all. Implementations
// must condition the commit on the invoice still being PENDING.

type IChargeTransaction interface {
	CommitSuccessfulCharge(ctx context.Context, invoiceID, paymentID string, chargedAt time.Time) error
}
