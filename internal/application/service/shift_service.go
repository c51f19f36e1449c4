package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ShiftService handles cashier shift lifecycle
type ShiftService struct {
	shiftRepo   repository.ShiftRepository
	receiptRepo repository.ReceiptRepository
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository, receiptRepo repository.ReceiptRepository) *ShiftService {
	return &ShiftService{shiftRepo: shiftRepo, receiptRepo: receiptRepo}
}

// StartShift opens a new shift for the acting cashier. The one-open-shift
// rule is enforced by an application-level pre-check, read-then-write.
func (s *ShiftService) StartShift(ctx context.Context, actor entity.Actor, openingBalance decimal.Decimal) (*entity.CashierShift, error) {
	if openingBalance.IsNegative() {
		return nil, apperror.NewBadRequestError("Opening balance cannot be negative")
	}

	existing, err := s.shiftRepo.GetOpenForCashier(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Shift already open for this cashier")
	}

	shift := &entity.CashierShift{
		ClinicID:       actor.ClinicID,
		CashierID:      actor.ID,
		CashierName:    actor.Name,
		OpeningBalance: openingBalance,
		Status:         enum.ShiftStatusOpen,
		OpenedAt:       time.Now(),
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// CloseShift closes a shift, summing the cashier's active receipts for the
// shift window into the reconciliation totals.
func (s *ShiftService) CloseShift(ctx context.Context, actor entity.Actor, shiftID uuid.UUID, closingBalance decimal.Decimal, notes string) (*entity.CashierShift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	if !shift.IsOpen() {
		return nil, apperror.NewConflictError("Shift is already closed")
	}
	if shift.CashierID != actor.ID && !actor.HasRole("admin") && !actor.HasRole("super-admin") {
		return nil, apperror.ErrForbidden
	}

	now := time.Now()
	total, count, err := s.receiptRepo.SumForCashierWindow(ctx, shift.CashierID, shift.OpenedAt, now)
	if err != nil {
		return nil, err
	}

	shift.Status = enum.ShiftStatusClosed
	shift.ClosedAt = &now
	shift.ClosingBalance = closingBalance
	shift.TotalCollected = total
	shift.ReceiptCount = count
	shift.ExpectedCash = shift.OpeningBalance.Add(total)
	shift.Notes = notes

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// CurrentShift returns the cashier's open shift
func (s *ShiftService) CurrentShift(ctx context.Context, cashierID uuid.UUID) (*entity.CashierShift, error) {
	shift, err := s.shiftRepo.GetOpenForCashier(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}
	return shift, nil
}

// GetShift retrieves a shift by ID
func (s *ShiftService) GetShift(ctx context.Context, id uuid.UUID) (*entity.CashierShift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	return shift, nil
}

// ListShifts lists shifts with filtering
func (s *ShiftService) ListShifts(ctx context.Context, params *repository.ShiftFilterParams) (*pagination.PaginatedResult[entity.CashierShift], error) {
	shifts, total, err := s.shiftRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(shifts, pag), nil
}
