package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidPaymentID = errors.New("invalid payment id")
)

// IPaymentUseCase exposes payment-ledger read operations for the REST surface.

type IPaymentUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListAll(ctx context.Context) ([]entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo interfaces.IPaymentRepository
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{repo: repo}
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListAll(ctx context.Context) ([]entities.Payment, error) {
	return u.repo.ListAll(ctx)
}

func (u *PaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}
