package handlers

import (
	"errors"
	"log"
	"net/http"

	response "github.com/ddelliosRJ/antaeus/internal/adapter/http/dto/response"
	"github.com/ddelliosRJ/antaeus/internal/usecase"
	"github.com/ddelliosRJ/antaeus/pkg"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles HTTP reads of the invoice store.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.usecase.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("[invoice][handler] list failed err=%v", err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	id := c.Param("id")

	inv, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[invoice][handler] get failed invoice_id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

func (h *InvoiceHandler) ListInvoicesByStatus(c *gin.Context) {
	status := c.Param("status")

	invoices, err := h.usecase.ListByStatus(c.Request.Context(), status)
	if err != nil {
		log.Printf("[invoice][handler] list-by-status failed status=%s err=%v", status, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidInvoiceStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
