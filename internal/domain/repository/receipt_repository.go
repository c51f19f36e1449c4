package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	ListWithCursor(ctx context.Context, params *ReceiptCursorFilterParams) ([]entity.Receipt, error)
	GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.Receipt, error)
	// SumForCashierWindow totals active receipts recorded by a cashier in
	// the [from, to) window, used for shift reconciliation.
	SumForCashierWindow(ctx context.Context, cashierID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error)
	CountCreatedInYear(ctx context.Context, year int) (int64, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.ReceiptStatus
	PaymentMethod string
	CashierID     *uuid.UUID
	PatientID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// ReceiptCursorFilterParams contains cursor-based filtering for receipt queries
type ReceiptCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Search        string
	Status        *enum.ReceiptStatus
	PaymentMethod string
	CashierID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}
