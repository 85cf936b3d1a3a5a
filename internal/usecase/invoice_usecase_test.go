package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ddelliosRJ/antaeus/internal/domain/entities"
	mock_interfaces "github.com/ddelliosRJ/antaeus/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestInvoiceUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewInvoiceUseCase(nil)
		_, err := uc.GetByID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidInvoiceID) {
			t.Fatalf("expected ErrInvalidInvoiceID, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewInvoiceUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{}, errors.New("db"))

		_, err := uc.GetByID(context.Background(), "inv-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewInvoiceUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{}, nil)

		_, err := uc.GetByID(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})

	t.Run("success trims the id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewInvoiceUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{ID: "inv-1"}, nil)

		inv, err := uc.GetByID(context.Background(), " inv-1 ")
		if err != nil || inv.ID != "inv-1" {
			t.Fatalf("unexpected result err=%v inv=%+v", err, inv)
		}
	})
}

func TestInvoiceUseCase_ListByStatus(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		uc := NewInvoiceUseCase(nil)
		_, err := uc.ListByStatus(context.Background(), "OVERDUE")
		if !errors.Is(err, ErrInvalidInvoiceStatus) {
			t.Fatalf("expected ErrInvalidInvoiceStatus, got %v", err)
		}
	})

	t.Run("status is case insensitive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewInvoiceUseCase(repo)
		repo.EXPECT().ListByStatus(gomock.Any(), entities.InvoiceStatusPending).
			Return([]entities.Invoice{{ID: "inv-1"}}, nil)

		invoices, err := uc.ListByStatus(context.Background(), " pending ")
		if err != nil || len(invoices) != 1 {
			t.Fatalf("unexpected result err=%v invoices=%+v", err, invoices)
		}
	})

	t.Run("paid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewInvoiceUseCase(repo)
		repo.EXPECT().ListByStatus(gomock.Any(), entities.InvoiceStatusPaid).Return(nil, nil)

		if _, err := uc.ListByStatus(context.Background(), "PAID"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestInvoiceUseCase_ListAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
	uc := NewInvoiceUseCase(repo)
	repo.EXPECT().ListAll(gomock.Any()).Return([]entities.Invoice{{ID: "inv-1"}, {ID: "inv-2"}}, nil)

	invoices, err := uc.ListAll(context.Background())
	if err != nil || len(invoices) != 2 {
		t.Fatalf("unexpected result err=%v invoices=%+v", err, invoices)
	}
}
