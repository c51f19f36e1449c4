package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// ShiftRepository defines the interface for cashier shift data operations
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.CashierShift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashierShift, error)
	Update(ctx context.Context, shift *entity.CashierShift) error
	// GetOpenForCashier returns the cashier's currently open shift, or a
	// not-found error when none is open.
	GetOpenForCashier(ctx context.Context, cashierID uuid.UUID) (*entity.CashierShift, error)
	List(ctx context.Context, params *ShiftFilterParams) ([]entity.CashierShift, int64, error)
}

// ShiftFilterParams contains filtering parameters for shift queries
type ShiftFilterParams struct {
	Pagination *pagination.PaginationParams
	CashierID  *uuid.UUID
	Status     *enum.ShiftStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
