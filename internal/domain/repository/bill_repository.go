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

// BillRepository defines the interface for patient bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.PatientBill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PatientBill, error)
	GetByBillNumber(ctx context.Context, billNumber string) (*entity.PatientBill, error)
	// GetWithServices retrieves a bill with its line items ordered by position
	GetWithServices(ctx context.Context, id uuid.UUID) (*entity.PatientBill, error)
	Update(ctx context.Context, bill *entity.PatientBill) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.PatientBill, int64, error)
	// FindActiveForPatient returns the patient's most recent reusable bill.
	// Bills in pending, partial, active and paid states all qualify, so a
	// settled bill is reopened rather than a new one started.
	FindActiveForPatient(ctx context.Context, patientID uuid.UUID) (*entity.PatientBill, error)
	// ApplyPayment atomically adds amount to paid_amount, subtracts it from
	// balance_amount and sets the status, guarded so the balance cannot go
	// negative. Returns (false, nil) when the guard rejects the update.
	ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, status enum.BillStatus) (bool, error)
	CountCreatedInYear(ctx context.Context, year int) (int64, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.BillStatus
	PatientID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// BillServiceRepository defines the interface for bill line item operations
type BillServiceRepository interface {
	CreateBatch(ctx context.Context, services []entity.BillService) error
	GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillService, error)
	// MarkPaidByPositions marks the lines at the given positions paid.
	// Missing positions are skipped without error.
	MarkPaidByPositions(ctx context.Context, billID uuid.UUID, positions []int, paidAt time.Time) error
	// MaxPosition returns the highest line position on a bill, -1 when empty
	MaxPosition(ctx context.Context, billID uuid.UUID) (int, error)
	DeleteByBillID(ctx context.Context, billID uuid.UUID) error
}
