package routes

import (
	"github.com/ddelliosRJ/antaeus/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices  = "/invoices"
	PathCustomers = "/customers"
	PathPayments  = "/payments"
	PathBilling   = "/billing"
)

func addBillingRoutes(
	rg *gin.RouterGroup,
	invoiceHandler *handlers.InvoiceHandler,
	customerHandler *handlers.CustomerHandler,
	paymentHandler *handlers.PaymentHandler,
	billingHandler *handlers.BillingHandler,
) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.GET("/status/:status", invoiceHandler.ListInvoicesByStatus)
		invoices.GET("/:id", invoiceHandler.GetInvoiceByID)
	}

	customers := rg.Group(PathCustomers)
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.GET("/:id", customerHandler.GetCustomerByID)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("", paymentHandler.ListPayments)
		payments.GET("/invoice/:invoice_id", paymentHandler.ListPaymentsByInvoiceID)
		payments.GET("/:id", paymentHandler.GetPaymentByID)
	}

	billing := rg.Group(PathBilling)
	{
		billing.POST("/charge", billingHandler.ChargePendingInvoices)
		billing.POST("/charge/:invoice_id", billingHandler.ChargeInvoiceByID)
	}
}
