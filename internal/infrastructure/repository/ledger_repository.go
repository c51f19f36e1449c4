package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger account repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *ledgerRepository) Create(ctx context.Context, account *entity.LedgerAccount) error {
	return r.conn(ctx).Create(account).Error
}

func (r *ledgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerAccount, error) {
	var account entity.LedgerAccount
	err := r.conn(ctx).Scopes(ClinicScope(ctx)).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

// GetByCode orders by created_at so duplicate codes resolve to the oldest
// account. Codes carry no uniqueness constraint.
func (r *ledgerRepository) GetByCode(ctx context.Context, code string) (*entity.LedgerAccount, error) {
	var account entity.LedgerAccount
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Where("account_code = ?", code).
		Order("created_at ASC").
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *ledgerRepository) Update(ctx context.Context, account *entity.LedgerAccount) error {
	return r.conn(ctx).Save(account).Error
}

func (r *ledgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.LedgerAccount{}, "id = ?", id).Error
}

func (r *ledgerRepository) List(ctx context.Context) ([]entity.LedgerAccount, error) {
	var accounts []entity.LedgerAccount
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Order("created_at ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *ledgerRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]entity.LedgerAccount, error) {
	var accounts []entity.LedgerAccount
	err := r.conn(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *ledgerRepository) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.LedgerAccount{}).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	return count, err
}

// AdjustBalance applies the delta in one UPDATE, never read-modify-write.
func (r *ledgerRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.conn(ctx).Model(&entity.LedgerAccount{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
