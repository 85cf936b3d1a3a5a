package handlers

import (
	"errors"
	"log"
	"net/http"

	response "github.com/ddelliosRJ/antaeus/internal/adapter/http/dto/response"
	"github.com/ddelliosRJ/antaeus/internal/usecase"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"
	"github.com/ddelliosRJ/antaeus/pkg"

	"github.com/gin-gonic/gin"
)

// BillingHandler triggers the billing batch and single-invoice charges.

type BillingHandler struct {
	usecase usecase.IBillingUseCase
}

func NewBillingHandler(uc usecase.IBillingUseCase) *BillingHandler {
	return &BillingHandler{usecase: uc}
}

// ChargePendingInvoices runs the batch over every PENDING invoice. The batch
// runner swallows per-invoice errors into outcome entries, so the trigger
// itself only fails when the pending snapshot cannot be taken.
func (h *BillingHandler) ChargePendingInvoices(c *gin.Context) {
	log.Printf("[billing][handler] batch trigger")

	results, err := h.usecase.ChargePendingInvoices(c.Request.Context())
	if err != nil {
		log.Printf("[billing][handler] batch failed err=%v", err)
		appErr := mapBillingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[billing][handler] batch done charged_invoices=%d", len(results))
	c.JSON(http.StatusOK, response.FromBillingRun(results))
}

// ChargeInvoiceByID charges one invoice and surfaces workflow errors as
// their specific status codes.
func (h *BillingHandler) ChargeInvoiceByID(c *gin.Context) {
	invoiceID := c.Param("invoice_id")
	log.Printf("[billing][handler] charge trigger invoice_id=%s", invoiceID)

	outcome, err := h.usecase.ChargeInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		log.Printf("[billing][handler] charge failed invoice_id=%s err=%v", invoiceID, err)
		appErr := mapBillingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBillingRun([]string{outcome}))
}

func mapBillingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCurrencyMismatch):
		return pkg.NewDomainErrorSimple("CURRENCY_MISMATCH", "Invoice currency does not match customer currency", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice has already been charged", http.StatusConflict)
	case errors.Is(err, interfaces.ErrGatewayUnavailable):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
