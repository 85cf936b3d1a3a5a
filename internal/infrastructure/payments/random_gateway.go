package payments

import (
	"context"
	"log"
	"math/rand"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"
)

// RandomGateway simulates an unreliable payment provider for local runs:
// charges succeed or get declined at random and the gateway occasionally
// fails with a network error or an unknown-customer error, so the retry and
// error-isolation paths of the billing workflow actually get exercised.

type RandomGateway struct {
	transientRate float64
	unknownRate   float64
}

var _ interfaces.IPaymentGateway = (*RandomGateway)(nil)

func NewRandomGateway() *RandomGateway {
	return &RandomGateway{transientRate: 0.1, unknownRate: 0.05}
}

func (g *RandomGateway) Charge(_ context.Context, invoice entities.Invoice) (bool, error) {
	roll := rand.Float64()
	switch {
	case roll < g.transientRate:
		log.Printf("[payment][gateway] simulated network failure invoice_id=%s", invoice.ID)
		return false, interfaces.ErrGatewayUnavailable
	case roll < g.transientRate+g.unknownRate:
		log.Printf("[payment][gateway] simulated unknown customer invoice_id=%s customer_id=%s", invoice.ID, invoice.CustomerID)
		return false, interfaces.ErrGatewayCustomerUnknown
	default:
		success := rand.Intn(2) == 0
		log.Printf("[payment][gateway] simulated charge invoice_id=%s success=%t", invoice.ID, success)
		return success, nil
	}
}
