package entities

import (
	"errors"
	"strings"
)

// Currency is the settlement currency of a customer and of every money
// amount attached to that customer's invoices.

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyDKK Currency = "DKK"
	CurrencySEK Currency = "SEK"
	CurrencyGBP Currency = "GBP"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

// Currencies lists every supported currency code.
func Currencies() []Currency {
	return []Currency{CurrencyEUR, CurrencyUSD, CurrencyDKK, CurrencySEK, CurrencyGBP}
}

// ParseCurrency converts a wire/storage string into a Currency.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	for _, known := range Currencies() {
		if c == known {
			return c, nil
		}
	}
	return "", ErrUnknownCurrency
}
