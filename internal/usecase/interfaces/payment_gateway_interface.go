package interfaces

import (
	"context"
	"errors"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
)

var (
	// ErrGatewayUnavailable is the transient network-class failure: the
	// gateway never definitively answered and the call may be retried.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayCustomerUnknown is a permanent domain failure from the
	// gateway; retrying cannot fix it.
	ErrGatewayCustomerUnknown = errors.New("payment gateway does not know the customer")
)

// IPaymentGateway abstracts the external service that actually moves money
// (e.g. Mercado Pago). It is unreliable by contract.
//
// Charge returns:
//   - (true, nil) when the customer account was charged
//   - (false, nil) when the charge was declined (e.g. insufficient funds);
//     a decline is a business outcome, not an error
//   - (false, err) on gateway failure; transient network-class errors are
//     retried by the billing usecase, permanent ones are not

type IPaymentGateway interface {
	Charge(ctx context.Context, invoice entities.Invoice) (bool, error)
}
