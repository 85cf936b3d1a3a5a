// Package seed fills the stores with synthetic customers and pending
// invoices so a local instance has something to charge.
package seed

import (
	"context"
	"log"
	"math/rand"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

const (
	demoCustomers           = 20
	demoInvoicesPerCustomer = 5
)

// DemoData creates demoCustomers customers with random currencies and
// demoInvoicesPerCustomer PENDING invoices each, every invoice denominated in
// its customer's currency.
func DemoData(ctx context.Context, customers interfaces.ICustomerRepository, invoices interfaces.IInvoiceRepository) error {
	currencies := entities.Currencies()

	for i := 0; i < demoCustomers; i++ {
		customer, err := customers.Create(ctx, entities.Customer{
			Currency: currencies[rand.Intn(len(currencies))],
		})
		if err != nil {
			return err
		}

		for j := 0; j < demoInvoicesPerCustomer; j++ {
			amount := decimal.NewFromInt(int64(rand.Intn(10_000) + 1)).Div(decimal.NewFromInt(100))
			_, err := invoices.Create(ctx, entities.Invoice{
				CustomerID: customer.ID,
				Amount:     entities.NewMoney(amount, customer.Currency),
				Status:     entities.InvoiceStatusPending,
			})
			if err != nil {
				return err
			}
		}
	}

	log.Printf("[seed] demo data created customers=%d invoices_per_customer=%d", demoCustomers, demoInvoicesPerCustomer)
	return nil
}
