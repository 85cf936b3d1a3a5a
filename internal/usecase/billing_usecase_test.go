package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"
	mock_interfaces "github.com/ddelliosRJ/antaeus/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type billingMocks struct {
	invoiceRepo  *mock_interfaces.MockIInvoiceRepository
	customerRepo *mock_interfaces.MockICustomerRepository
	paymentRepo  *mock_interfaces.MockIPaymentRepository
	chargeTx     *mock_interfaces.MockIChargeTransaction
	gateway      *mock_interfaces.MockIPaymentGateway
}

func newBillingUseCaseForTest(ctrl *gomock.Controller, retry RetryPolicy) (*BillingUseCase, billingMocks) {
	m := billingMocks{
		invoiceRepo:  mock_interfaces.NewMockIInvoiceRepository(ctrl),
		customerRepo: mock_interfaces.NewMockICustomerRepository(ctrl),
		paymentRepo:  mock_interfaces.NewMockIPaymentRepository(ctrl),
		chargeTx:     mock_interfaces.NewMockIChargeTransaction(ctrl),
		gateway:      mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	uc := NewBillingUseCase(m.invoiceRepo, m.customerRepo, m.paymentRepo, m.chargeTx, m.gateway, retry, 2)
	return uc, m
}

func pendingInvoice(id, customerID string, currency entities.Currency) entities.Invoice {
	return entities.Invoice{
		ID:         id,
		CustomerID: customerID,
		Amount:     entities.NewMoney(decimal.NewFromFloat(129.90), currency),
		Status:     entities.InvoiceStatusPending,
	}
}

// zero-delay policy so retry tests don't sleep
func testRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, Delay: 0}
}

func TestBillingUseCase_ChargeInvoice_Validations(t *testing.T) {
	t.Run("empty invoice id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		_, err := uc.ChargeInvoice(context.Background(), "   ")
		if !errors.Is(err, ErrInvalidInvoiceID) {
			t.Fatalf("expected ErrInvalidInvoiceID, got %v", err)
		}
	})

	t.Run("invoice repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{}, errors.New("db"))

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("invoice not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{}, nil)

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})

	t.Run("already paid invoice is never recharged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		paid := pendingInvoice("inv-1", "cust-1", entities.CurrencyEUR)
		paid.Status = entities.InvoiceStatusPaid
		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(paid, nil)
		// No customer lookup, no payment row, no gateway call.

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvoiceAlreadyPaid) {
			t.Fatalf("expected ErrInvoiceAlreadyPaid, got %v", err)
		}
	})

	t.Run("customer not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(pendingInvoice("inv-1", "cust-1", entities.CurrencyEUR), nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{}, nil)

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})

	t.Run("currency mismatch rejected before any ledger write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(pendingInvoice("inv-1", "cust-1", entities.CurrencySEK), nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1", Currency: entities.CurrencyDKK}, nil)
		// Payment Create and gateway Charge must not run.

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if !errors.Is(err, ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestBillingUseCase_ChargeInvoice_Outcomes(t *testing.T) {
	invoice := pendingInvoice("inv-1", "cust-1", entities.CurrencyEUR)
	customer := entities.Customer{ID: "cust-1", Currency: entities.CurrencyEUR}

	t.Run("successful charge commits payment and invoice together", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(invoice, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.InvoiceID != "inv-1" {
					t.Fatalf("unexpected payment invoice id: %+v", p)
				}
				if p.ChargeSuccess {
					t.Fatalf("attempt row must start as failed: %+v", p)
				}
				if !p.Amount.Value.Equal(invoice.Amount.Value) || p.Amount.Currency != invoice.Amount.Currency {
					t.Fatalf("payment amount must copy the invoice amount: %+v", p)
				}
				if p.ChargeDate.IsZero() {
					t.Fatalf("charge date must be set")
				}
				p.ID = "pay-1"
				return p, nil
			},
		)
		m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(true, nil)
		m.chargeTx.EXPECT().CommitSuccessfulCharge(gomock.Any(), "inv-1", "pay-1", gomock.AssignableToTypeOf(time.Time{})).Return(nil)

		outcome, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(outcome, "Payment successful for invoice [inv-1] at ") {
			t.Fatalf("unexpected outcome: %q", outcome)
		}
	})

	t.Run("declined charge keeps the invoice pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(invoice, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				p.ID = "pay-1"
				return p, nil
			},
		)
		m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(false, nil)
		// No commit and no invoice status update on a decline.

		outcome, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != "Payment failed for invoice [inv-1]" {
			t.Fatalf("unexpected outcome: %q", outcome)
		}
	})

	t.Run("transient gateway error retried up to the attempt budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(invoice, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				p.ID = "pay-1"
				return p, nil
			},
		)
		m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(false, interfaces.ErrGatewayUnavailable).Times(2)

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if !errors.Is(err, interfaces.ErrGatewayUnavailable) {
			t.Fatalf("expected ErrGatewayUnavailable after exhausted retries, got %v", err)
		}
	})

	t.Run("transient error recovers on the second attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(invoice, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				p.ID = "pay-1"
				return p, nil
			},
		)
		gomock.InOrder(
			m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(false, interfaces.ErrGatewayUnavailable),
			m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(true, nil),
		)
		m.chargeTx.EXPECT().CommitSuccessfulCharge(gomock.Any(), "inv-1", "pay-1", gomock.Any()).Return(nil)

		outcome, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(outcome, "Payment successful for invoice [inv-1]") {
			t.Fatalf("unexpected outcome: %q", outcome)
		}
	})

	t.Run("permanent gateway error not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(invoice, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				p.ID = "pay-1"
				return p, nil
			},
		)
		m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(false, interfaces.ErrGatewayCustomerUnknown).Times(1)

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if !errors.Is(err, interfaces.ErrGatewayCustomerUnknown) {
			t.Fatalf("expected ErrGatewayCustomerUnknown, got %v", err)
		}
	})

	t.Run("commit conflict means a concurrent charge won", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(invoice, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				p.ID = "pay-1"
				return p, nil
			},
		)
		m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(true, nil)
		m.chargeTx.EXPECT().CommitSuccessfulCharge(gomock.Any(), "inv-1", "pay-1", gomock.Any()).Return(interfaces.ErrInvoiceStateConflict)

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvoiceAlreadyPaid) {
			t.Fatalf("expected ErrInvoiceAlreadyPaid on commit conflict, got %v", err)
		}
	})

	t.Run("commit infrastructure error propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(invoice, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				p.ID = "pay-1"
				return p, nil
			},
		)
		m.gateway.EXPECT().Charge(gomock.Any(), invoice).Return(true, nil)
		m.chargeTx.EXPECT().CommitSuccessfulCharge(gomock.Any(), "inv-1", "pay-1", gomock.Any()).Return(errors.New("tx"))

		_, err := uc.ChargeInvoice(context.Background(), "inv-1")
		if err == nil || err.Error() != "tx" {
			t.Fatalf("expected tx error, got %v", err)
		}
	})
}

func TestBillingUseCase_ChargePendingInvoices(t *testing.T) {
	t.Run("list error aborts the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().ListByStatus(gomock.Any(), entities.InvoiceStatusPending).Return(nil, errors.New("db"))

		_, err := uc.ChargePendingInvoices(context.Background())
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("no pending invoices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		m.invoiceRepo.EXPECT().ListByStatus(gomock.Any(), entities.InvoiceStatusPending).Return(nil, nil)

		outcomes, err := uc.ChargePendingInvoices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(outcomes) != 0 {
			t.Fatalf("expected no outcomes, got %v", outcomes)
		}
	})

	t.Run("one failing invoice never aborts its siblings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		customer := entities.Customer{ID: "cust-1", Currency: entities.CurrencyUSD}
		inv1 := pendingInvoice("inv-1", "cust-1", entities.CurrencyUSD)
		inv2 := pendingInvoice("inv-2", "cust-1", entities.CurrencyUSD)
		inv3 := pendingInvoice("inv-3", "cust-1", entities.CurrencyUSD)

		m.invoiceRepo.EXPECT().ListByStatus(gomock.Any(), entities.InvoiceStatusPending).
			Return([]entities.Invoice{inv1, inv2, inv3}, nil)

		// Each worker re-fetches its invoice before charging.
		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv1, nil)
		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-2").Return(inv2, nil)
		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-3").Return(inv3, nil)
		m.customerRepo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil).Times(3)
		m.paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				p.ID = "pay-" + p.InvoiceID
				return p, nil
			},
		).Times(3)

		m.gateway.EXPECT().Charge(gomock.Any(), inv1).Return(true, nil)
		m.gateway.EXPECT().Charge(gomock.Any(), inv2).Return(false, interfaces.ErrGatewayCustomerUnknown)
		m.gateway.EXPECT().Charge(gomock.Any(), inv3).Return(false, nil)

		m.chargeTx.EXPECT().CommitSuccessfulCharge(gomock.Any(), "inv-1", "pay-inv-1", gomock.Any()).Return(nil)

		outcomes, err := uc.ChargePendingInvoices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(outcomes) != 3 {
			t.Fatalf("expected 3 outcomes, got %d: %v", len(outcomes), outcomes)
		}
		if !strings.HasPrefix(outcomes[0], "Payment successful for invoice [inv-1]") {
			t.Fatalf("unexpected outcome for inv-1: %q", outcomes[0])
		}
		want := fmt.Sprintf("Payment error for invoice [inv-2]: %v", interfaces.ErrGatewayCustomerUnknown)
		if outcomes[1] != want {
			t.Fatalf("unexpected outcome for inv-2: %q", outcomes[1])
		}
		if outcomes[2] != "Payment failed for invoice [inv-3]" {
			t.Fatalf("unexpected outcome for inv-3: %q", outcomes[2])
		}
	})

	t.Run("invoice paid between snapshot and charge is skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newBillingUseCaseForTest(ctrl, testRetryPolicy())

		stale := pendingInvoice("inv-1", "cust-1", entities.CurrencyGBP)
		current := stale
		current.Status = entities.InvoiceStatusPaid

		m.invoiceRepo.EXPECT().ListByStatus(gomock.Any(), entities.InvoiceStatusPending).
			Return([]entities.Invoice{stale}, nil)
		m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(current, nil)
		// No payment row and no gateway call for the stale entry.

		outcomes, err := uc.ChargePendingInvoices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := fmt.Sprintf("Payment error for invoice [inv-1]: %v", ErrInvoiceAlreadyPaid)
		if len(outcomes) != 1 || outcomes[0] != want {
			t.Fatalf("unexpected outcomes: %v", outcomes)
		}
	})
}
