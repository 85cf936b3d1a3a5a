package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")
)

// IInvoiceUseCase exposes invoice read operations for the REST surface.

type IInvoiceUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	ListAll(ctx context.Context) ([]entities.Invoice, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo interfaces.IInvoiceRepository
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo}
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) ListAll(ctx context.Context) ([]entities.Invoice, error) {
	return u.repo.ListAll(ctx)
}

func (u *InvoiceUseCase) ListByStatus(ctx context.Context, status string) ([]entities.Invoice, error) {
	switch s := entities.InvoiceStatus(strings.ToUpper(strings.TrimSpace(status))); s {
	case entities.InvoiceStatusPending, entities.InvoiceStatusPaid:
		return u.repo.ListByStatus(ctx, s)
	default:
		return nil, ErrInvalidInvoiceStatus
	}
}
