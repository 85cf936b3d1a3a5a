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

// CustomerHandler handles HTTP reads of the customer directory.

type CustomerHandler struct {
	usecase usecase.ICustomerUseCase
}

func NewCustomerHandler(uc usecase.ICustomerUseCase) *CustomerHandler {
	return &CustomerHandler{usecase: uc}
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.usecase.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("[customer][handler] list failed err=%v", err)
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCustomers(customers))
}

func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	id := c.Param("id")

	customer, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[customer][handler] get failed customer_id=%s err=%v", id, err)
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCustomer(customer))
}

func mapCustomerError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCustomerID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
