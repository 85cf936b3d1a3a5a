package entities

import "time"

// Payment records one charge attempt against an invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (invoice_id-index): invoice_id
//
// A row is created with ChargeSuccess=false before the gateway is invoked and
// flipped to true, together with the owning invoice's status, only inside the
// commit transaction on confirmed gateway success. A failed or abandoned
// attempt keeps its row; the ledger is append-mostly and rows are never
// deleted.

type Payment struct {
	ID            string    `json:"id"`
	InvoiceID     string    `json:"invoice_id"`
	Amount        Money     `json:"amount"`
	ChargeDate    time.Time `json:"charge_date"`
	ChargeSuccess bool      `json:"charge_success"`
}
