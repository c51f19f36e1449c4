package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// FinanceService handles expenses and cash transfers against the ledger
type FinanceService struct {
	expenseRepo  repository.ExpenseRepository
	transferRepo repository.CashTransferRepository
	ledgerRepo   repository.LedgerRepository
	txManager    repository.TxManager
}

// NewFinanceService creates a new finance service
func NewFinanceService(
	expenseRepo repository.ExpenseRepository,
	transferRepo repository.CashTransferRepository,
	ledgerRepo repository.LedgerRepository,
	txManager repository.TxManager,
) *FinanceService {
	return &FinanceService{
		expenseRepo:  expenseRepo,
		transferRepo: transferRepo,
		ledgerRepo:   ledgerRepo,
		txManager:    txManager,
	}
}

// RecordExpenseInput represents the record expense input
type RecordExpenseInput struct {
	AccountID   uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
	PaidTo      string
	Reference   string
	ExpenseDate time.Time
}

// RecordExpense records an expense, decrementing the source account
// balance in the same transaction.
func (s *FinanceService) RecordExpense(ctx context.Context, actor entity.Actor, input *RecordExpenseInput) (*entity.Expense, error) {
	var fieldErrors []apperror.FieldError
	if !input.Amount.GreaterThan(decimal.Zero) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount must be positive"})
	}
	if input.Description == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "description", Message: "description is required"})
	}
	if input.Category == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "category is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	account, err := s.ledgerRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &entity.Expense{
		ClinicID:    actor.ClinicID,
		AccountID:   input.AccountID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		PaidTo:      input.PaidTo,
		Reference:   input.Reference,
		ExpenseDate: expenseDate,
		RecordedBy:  actor.ID,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.expenseRepo.Create(ctx, expense); err != nil {
			return err
		}
		return s.ledgerRepo.AdjustBalance(ctx, input.AccountID, input.Amount.Neg())
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *FinanceService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// TransferInput represents the cash transfer input
type TransferInput struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Reason        string
}

// Transfer moves an amount between two ledger accounts, applying both
// deltas in one transaction.
func (s *FinanceService) Transfer(ctx context.Context, actor entity.Actor, input *TransferInput) (*entity.CashTransfer, error) {
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, apperror.NewBadRequestError("Transfer amount must be positive")
	}
	if input.FromAccountID == input.ToAccountID {
		return nil, apperror.NewBadRequestError("Cannot transfer to the same account")
	}

	from, err := s.ledgerRepo.GetByID(ctx, input.FromAccountID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, apperror.NewNotFoundError("Source account")
	}
	to, err := s.ledgerRepo.GetByID(ctx, input.ToAccountID)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, apperror.NewNotFoundError("Destination account")
	}

	transfer := &entity.CashTransfer{
		ClinicID:      actor.ClinicID,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Reason:        input.Reason,
		TransferDate:  time.Now(),
		TransferredBy: actor.ID,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.transferRepo.Create(ctx, transfer); err != nil {
			return err
		}
		if err := s.ledgerRepo.AdjustBalance(ctx, input.FromAccountID, input.Amount.Neg()); err != nil {
			return err
		}
		return s.ledgerRepo.AdjustBalance(ctx, input.ToAccountID, input.Amount)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// ListTransfers lists cash transfers, optionally filtered by account
func (s *FinanceService) ListTransfers(ctx context.Context, params *pagination.PaginationParams, accountID *uuid.UUID) (*pagination.PaginatedResult[entity.CashTransfer], error) {
	transfers, total, err := s.transferRepo.List(ctx, params, accountID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(transfers, pag), nil
}
