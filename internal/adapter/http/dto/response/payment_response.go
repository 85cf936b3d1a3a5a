package response

import (
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
)

type PaymentResponse struct {
	ID            string    `json:"id"`
	InvoiceID     string    `json:"invoice_id"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	ChargeDate    time.Time `json:"charge_date"`
	ChargeSuccess bool      `json:"charge_success"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount.Value.String(),
		Currency:      string(p.Amount.Currency),
		ChargeDate:    p.ChargeDate,
		ChargeSuccess: p.ChargeSuccess,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
