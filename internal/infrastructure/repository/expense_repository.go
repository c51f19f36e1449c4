package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/pagination"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.conn(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Account").
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.conn(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.conn(ctx).Model(&entity.Expense{}).Scopes(ClinicScope(ctx))

	if params.Search != "" {
		query = query.Where("description ILIKE ? OR paid_to ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.AccountID != nil {
		query = query.Where("account_id = ?", *params.AccountID)
	}

	if params.StartDate != nil {
		query = query.Where("expense_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("expense_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "expense_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Account").
		Order(sortBy + " " + sortOrder).
		Find(&expenses).Error

	return expenses, total, err
}

type cashTransferRepository struct {
	db *gorm.DB
}

// NewCashTransferRepository creates a new cash transfer repository
func NewCashTransferRepository(db *gorm.DB) domainRepo.CashTransferRepository {
	return &cashTransferRepository{db: db}
}

func (r *cashTransferRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *cashTransferRepository) Create(ctx context.Context, transfer *entity.CashTransfer) error {
	return r.conn(ctx).Create(transfer).Error
}

func (r *cashTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashTransfer, error) {
	var transfer entity.CashTransfer
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("FromAccount").
		Preload("ToAccount").
		First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *cashTransferRepository) List(ctx context.Context, params *pagination.PaginationParams, accountID *uuid.UUID) ([]entity.CashTransfer, int64, error) {
	var transfers []entity.CashTransfer
	var total int64

	query := r.conn(ctx).Model(&entity.CashTransfer{}).Scopes(ClinicScope(ctx))

	if accountID != nil {
		query = query.Where("from_account_id = ? OR to_account_id = ?", *accountID, *accountID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("FromAccount").
		Preload("ToAccount").
		Order("transfer_date DESC").
		Find(&transfers).Error

	return transfers, total, err
}
