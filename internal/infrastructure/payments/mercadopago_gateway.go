package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoGateway charges invoices through the Mercado Pago payments API.
//
// The provider's HTTP failures are translated into the gateway error
// taxonomy: 5xx-class responses become the transient gateway error (the
// billing retry policy may try again), unknown-payer responses become the
// permanent unknown-customer error, and a rejected payment is reported as a
// declined charge rather than an error.

type MercadoPagoGateway struct {
	client        payment.Client
	payerEmail    string
	paymentMethod string
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		client:        payment.NewClient(cfg),
		payerEmail:    os.Getenv("MERCADOPAGO_PAYER_EMAIL"),
		paymentMethod: os.Getenv("MERCADOPAGO_PAYMENT_METHOD_ID"),
	}, nil
}

func (g *MercadoPagoGateway) Charge(ctx context.Context, invoice entities.Invoice) (bool, error) {
	log.Printf("[payment][gateway] charge start invoice_id=%s amount=%s %s",
		invoice.ID, invoice.Amount.Value, invoice.Amount.Currency)

	req := payment.Request{
		TransactionAmount: invoice.Amount.Value.InexactFloat64(),
		Description:       fmt.Sprintf("Invoice %s", invoice.ID),
		ExternalReference: invoice.ID,
		PaymentMethodID:   g.paymentMethod,
	}
	if g.payerEmail != "" {
		req.Payer = &payment.PayerRequest{Email: g.payerEmail}
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed invoice_id=%s err=%v", invoice.ID, err)
		if isProviderServerError(err) {
			return false, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
		}
		if isProviderCustomerNotFound(err) {
			return false, fmt.Errorf("%w: %v", interfaces.ErrGatewayCustomerUnknown, err)
		}
		return false, err
	}

	log.Printf("[payment][gateway] charge answered invoice_id=%s provider_payment_id=%d provider_status=%s",
		invoice.ID, resp.ID, resp.Status)

	switch resp.Status {
	case "approved":
		return true, nil
	default:
		// rejected / cancelled / stuck in_process: not charged.
		return false, nil
	}
}

func isProviderServerError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"\"status\":500", "\"status\":502", "\"status\":503", "\"status\":504", "internal_server_error"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isProviderCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
