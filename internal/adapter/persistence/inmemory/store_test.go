package inmemory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(customerID string, status entities.InvoiceStatus) entities.Invoice {
	return entities.Invoice{
		CustomerID: customerID,
		Amount:     entities.NewMoney(decimal.NewFromFloat(42.50), entities.CurrencyEUR),
		Status:     status,
	}
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Customers()

	created, err := repo.Create(ctx, entities.Customer{Currency: entities.CurrencySEK})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	require.Empty(t, missing.ID)

	second, err := repo.Create(ctx, entities.Customer{ID: "cust-2", Currency: entities.CurrencyUSD})
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []entities.Customer{created, second}, all)
}

func TestInvoiceRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Invoices()

	pending, err := repo.Create(ctx, newTestInvoice("cust-1", ""))
	require.NoError(t, err)
	require.NotEmpty(t, pending.ID)
	require.Equal(t, entities.InvoiceStatusPending, pending.Status, "status defaults to PENDING")

	paid, err := repo.Create(ctx, newTestInvoice("cust-1", entities.InvoiceStatusPaid))
	require.NoError(t, err)

	byStatus, err := repo.ListByStatus(ctx, entities.InvoiceStatusPending)
	require.NoError(t, err)
	require.Equal(t, []entities.Invoice{pending}, byStatus)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []entities.Invoice{pending, paid}, all)

	updated, err := repo.UpdateStatus(ctx, pending.ID, entities.InvoiceStatusPaid)
	require.NoError(t, err)
	require.Equal(t, entities.InvoiceStatusPaid, updated.Status)

	got, err := repo.GetByID(ctx, pending.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvoiceStatusPaid, got.Status)

	missing, err := repo.UpdateStatus(ctx, "nope", entities.InvoiceStatusPaid)
	require.NoError(t, err)
	require.Empty(t, missing.ID)
}

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Payments()

	first, err := repo.Create(ctx, entities.Payment{
		InvoiceID:  "inv-1",
		Amount:     entities.NewMoney(decimal.NewFromInt(10), entities.CurrencyGBP),
		ChargeDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.False(t, first.ChargeSuccess)

	_, err = repo.Create(ctx, entities.Payment{ID: "pay-2", InvoiceID: "inv-2"})
	require.NoError(t, err)

	byInvoice, err := repo.ListByInvoiceID(ctx, "inv-1")
	require.NoError(t, err)
	require.Equal(t, []entities.Payment{first}, byInvoice)

	chargedAt := time.Now().UTC()
	updated, err := repo.UpdateChargeStatus(ctx, first.ID, true, chargedAt)
	require.NoError(t, err)
	require.True(t, updated.ChargeSuccess)
	require.Equal(t, chargedAt, updated.ChargeDate)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestChargeTransaction_CommitSuccessfulCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("flips payment and invoice together", func(t *testing.T) {
		store := NewStore()
		inv, err := store.Invoices().Create(ctx, newTestInvoice("cust-1", entities.InvoiceStatusPending))
		require.NoError(t, err)
		p, err := store.Payments().Create(ctx, entities.Payment{InvoiceID: inv.ID, Amount: inv.Amount})
		require.NoError(t, err)

		chargedAt := time.Now().UTC()
		require.NoError(t, store.ChargeTransaction().CommitSuccessfulCharge(ctx, inv.ID, p.ID, chargedAt))

		gotInv, err := store.Invoices().GetByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, entities.InvoiceStatusPaid, gotInv.Status)

		gotPay, err := store.Payments().GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.True(t, gotPay.ChargeSuccess)
		require.Equal(t, chargedAt, gotPay.ChargeDate)
	})

	t.Run("conflict when invoice already paid", func(t *testing.T) {
		store := NewStore()
		inv, err := store.Invoices().Create(ctx, newTestInvoice("cust-1", entities.InvoiceStatusPaid))
		require.NoError(t, err)
		p, err := store.Payments().Create(ctx, entities.Payment{InvoiceID: inv.ID})
		require.NoError(t, err)

		err = store.ChargeTransaction().CommitSuccessfulCharge(ctx, inv.ID, p.ID, time.Now().UTC())
		require.ErrorIs(t, err, interfaces.ErrInvoiceStateConflict)

		gotPay, err := store.Payments().GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.False(t, gotPay.ChargeSuccess, "payment must not flip when the commit is rejected")
	})

	t.Run("conflict on unknown invoice or payment", func(t *testing.T) {
		store := NewStore()
		inv, err := store.Invoices().Create(ctx, newTestInvoice("cust-1", entities.InvoiceStatusPending))
		require.NoError(t, err)

		err = store.ChargeTransaction().CommitSuccessfulCharge(ctx, "nope", "pay-1", time.Now().UTC())
		require.ErrorIs(t, err, interfaces.ErrInvoiceStateConflict)

		err = store.ChargeTransaction().CommitSuccessfulCharge(ctx, inv.ID, "nope", time.Now().UTC())
		require.ErrorIs(t, err, interfaces.ErrInvoiceStateConflict)
	})

	t.Run("concurrent commits elect a single winner", func(t *testing.T) {
		store := NewStore()
		inv, err := store.Invoices().Create(ctx, newTestInvoice("cust-1", entities.InvoiceStatusPending))
		require.NoError(t, err)

		const racers = 16
		payments := make([]entities.Payment, racers)
		for i := range payments {
			payments[i], err = store.Payments().Create(ctx, entities.Payment{InvoiceID: inv.ID})
			require.NoError(t, err)
		}

		var wg sync.WaitGroup
		errs := make([]error, racers)
		for i := range racers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = store.ChargeTransaction().CommitSuccessfulCharge(ctx, inv.ID, payments[i].ID, time.Now().UTC())
			}()
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
			} else {
				require.ErrorIs(t, err, interfaces.ErrInvoiceStateConflict)
			}
		}
		require.Equal(t, 1, wins, "exactly one commit may win")

		successful := 0
		all, err := store.Payments().ListByInvoiceID(ctx, inv.ID)
		require.NoError(t, err)
		for _, p := range all {
			if p.ChargeSuccess {
				successful++
			}
		}
		require.Equal(t, 1, successful, "at most one successful payment per invoice")
	})
}
