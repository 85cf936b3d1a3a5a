package entities

// InvoiceStatus represents the billing lifecycle of an invoice.
//
// Domain notes:
//   - The only legal transition is PENDING -> PAID, driven by the billing
//     charge workflow on confirmed gateway success. There is no way back.

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
)

// Invoice is a billable amount owed by a customer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (status-index): status
//
// Amount and its currency are immutable after creation.

type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     Money         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}
