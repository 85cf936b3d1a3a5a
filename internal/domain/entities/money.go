package entities

import "github.com/shopspring/decimal"

// Money is a non-negative decimal amount in a single currency.
//
// Monetary representation:
//   - Value uses decimal.Decimal to avoid float drift on invoice amounts.
//   - Money is never mutated after it is attached to an Invoice or Payment.

type Money struct {
	Value    decimal.Decimal `json:"value"`
	Currency Currency        `json:"currency"`
}

func NewMoney(value decimal.Decimal, currency Currency) Money {
	return Money{Value: value, Currency: currency}
}
