package entities

// Customer owns invoices and fixes the settlement currency for all of them.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Currency is set at creation time and never changes afterwards.

type Customer struct {
	ID       string   `json:"id"`
	Currency Currency `json:"currency"`
}
