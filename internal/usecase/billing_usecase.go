package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInvoiceID   = errors.New("invalid invoice id")
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
	ErrCurrencyMismatch   = errors.New("invoice currency does not match customer currency")
)

const defaultMaxConcurrentCharges = 8

// IBillingUseCase drives the invoice charge workflow.
//
//   - ChargeInvoice runs the full per-invoice state machine: idempotency
//     guard, currency validation, ledger entry, gateway call behind the retry
//     policy, atomic commit.
//   - ChargePendingInvoices is the batch runner: it snapshots every PENDING
//     invoice and charges each one, isolating per-invoice failures.

type IBillingUseCase interface {
	ChargeInvoice(ctx context.Context, invoiceID string) (string, error)
	ChargePendingInvoices(ctx context.Context) ([]string, error)
}

type BillingUseCase struct {
	invoiceRepo  interfaces.IInvoiceRepository
	customerRepo interfaces.ICustomerRepository
	paymentRepo  interfaces.IPaymentRepository
	chargeTx     interfaces.IChargeTransaction
	gateway      interfaces.IPaymentGateway

	retry                RetryPolicy
	maxConcurrentCharges int
}

var _ IBillingUseCase = (*BillingUseCase)(nil)

func NewBillingUseCase(
	invoiceRepo interfaces.IInvoiceRepository,
	customerRepo interfaces.ICustomerRepository,
	paymentRepo interfaces.IPaymentRepository,
	chargeTx interfaces.IChargeTransaction,
	gateway interfaces.IPaymentGateway,
	retry RetryPolicy,
	maxConcurrentCharges int,
) *BillingUseCase {
	if maxConcurrentCharges < 1 {
		maxConcurrentCharges = defaultMaxConcurrentCharges
	}
	return &BillingUseCase{
		invoiceRepo:          invoiceRepo,
		customerRepo:         customerRepo,
		paymentRepo:          paymentRepo,
		chargeTx:             chargeTx,
		gateway:              gateway,
		retry:                retry,
		maxConcurrentCharges: maxConcurrentCharges,
	}
}

// ChargeInvoice charges a single invoice and returns a human-readable outcome.
//
// Ordering matters: the status re-check and the currency validation run
// before any ledger write, so a rejected precondition leaves zero Payment
// rows behind. The Payment row is created before the gateway call so that an
// attempt the gateway never answered is still on record.
func (u *BillingUseCase) ChargeInvoice(ctx context.Context, invoiceID string) (string, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return "", ErrInvalidInvoiceID
	}

	log.Printf("[billing][usecase] charge start invoice_id=%s", invoiceID)

	// Re-fetch the current status; a stale snapshot from the batch runner
	// must not bypass the double-charge guard.
	invoice, err := u.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	if invoice.ID == "" {
		log.Printf("[billing][usecase] invoice not found invoice_id=%s", invoiceID)
		return "", ErrInvoiceNotFound
	}
	if invoice.Status == entities.InvoiceStatusPaid {
		log.Printf("[billing][usecase] invoice already paid invoice_id=%s", invoiceID)
		return "", ErrInvoiceAlreadyPaid
	}

	customer, err := u.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return "", err
	}
	if customer.ID == "" {
		log.Printf("[billing][usecase] customer not found invoice_id=%s customer_id=%s", invoiceID, invoice.CustomerID)
		return "", ErrCustomerNotFound
	}
	if customer.Currency != invoice.Amount.Currency {
		log.Printf("[billing][usecase] currency mismatch invoice_id=%s invoice_currency=%s customer_currency=%s",
			invoiceID, invoice.Amount.Currency, customer.Currency)
		return "", ErrCurrencyMismatch
	}

	// Record the attempt before asking the gateway: a charge that never gets
	// a definitive answer must still leave a failed row in the ledger.
	payment, err := u.paymentRepo.Create(ctx, entities.Payment{
		InvoiceID:     invoice.ID,
		Amount:        invoice.Amount,
		ChargeDate:    time.Now().UTC(),
		ChargeSuccess: false,
	})
	if err != nil {
		return "", err
	}
	log.Printf("[billing][usecase] created pending payment invoice_id=%s payment_id=%s amount=%s %s",
		invoiceID, payment.ID, invoice.Amount.Value, invoice.Amount.Currency)

	success, err := withRetry(ctx, u.retry, func(ctx context.Context) (bool, error) {
		return u.gateway.Charge(ctx, invoice)
	})
	if err != nil {
		log.Printf("[billing][usecase] gateway charge failed invoice_id=%s payment_id=%s err=%v", invoiceID, payment.ID, err)
		return "", err
	}

	if !success {
		// Declined charge (e.g. insufficient funds): a normal business
		// outcome. The failed row stays, the invoice stays PENDING.
		log.Printf("[billing][usecase] charge declined invoice_id=%s payment_id=%s", invoiceID, payment.ID)
		return fmt.Sprintf("Payment failed for invoice [%s]", invoice.ID), nil
	}

	chargedAt := time.Now().UTC()
	if err := u.chargeTx.CommitSuccessfulCharge(ctx, invoice.ID, payment.ID, chargedAt); err != nil {
		if errors.Is(err, interfaces.ErrInvoiceStateConflict) {
			// A concurrent workflow won the commit for this invoice.
			log.Printf("[billing][usecase] commit conflict, invoice already paid invoice_id=%s payment_id=%s", invoiceID, payment.ID)
			return "", ErrInvoiceAlreadyPaid
		}
		return "", err
	}

	log.Printf("[billing][usecase] charge success invoice_id=%s payment_id=%s", invoiceID, payment.ID)
	return fmt.Sprintf("Payment successful for invoice [%s] at %s", invoice.ID, chargedAt.Format(time.RFC3339)), nil
}

// ChargePendingInvoices snapshots every PENDING invoice once, charges each
// through ChargeInvoice with bounded concurrency, and returns one outcome per
// invoice in snapshot order. A failing invoice never aborts its siblings; any
// propagated error is logged and recorded as that invoice's outcome.
func (u *BillingUseCase) ChargePendingInvoices(ctx context.Context) ([]string, error) {
	pending, err := u.invoiceRepo.ListByStatus(ctx, entities.InvoiceStatusPending)
	if err != nil {
		return nil, err
	}
	log.Printf("[billing][usecase] batch start pending_invoices=%d max_workers=%d", len(pending), u.maxConcurrentCharges)

	outcomes := make([]string, len(pending))

	g := new(errgroup.Group)
	g.SetLimit(u.maxConcurrentCharges)
	for i, invoice := range pending {
		i, invoice := i, invoice
		g.Go(func() error {
			outcome, err := u.ChargeInvoice(ctx, invoice.ID)
			if err != nil {
				log.Printf("[billing][usecase] batch charge error invoice_id=%s err=%v", invoice.ID, err)
				outcome = fmt.Sprintf("Payment error for invoice [%s]: %v", invoice.ID, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	// Workers only ever return nil; Wait is just the join point.
	_ = g.Wait()

	log.Printf("[billing][usecase] batch done charged_invoices=%d", len(outcomes))
	return outcomes, nil
}
