package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type medicationRepository struct {
	db *gorm.DB
}

// NewMedicationRepository creates a new medication repository
func NewMedicationRepository(db *gorm.DB) domainRepo.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *medicationRepository) Create(ctx context.Context, medication *entity.Medication) error {
	return r.conn(ctx).Create(medication).Error
}

func (r *medicationRepository) CreateBatch(ctx context.Context, medications []entity.Medication) error {
	if len(medications) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&medications).Error
}

func (r *medicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	var medication entity.Medication
	err := r.conn(ctx).Scopes(ClinicScope(ctx)).First(&medication, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &medication, err
}

// GetByIDs retrieves multiple medications by their IDs in a single query (prevents N+1)
func (r *medicationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medication, error) {
	if len(ids) == 0 {
		return []entity.Medication{}, nil
	}
	var medications []entity.Medication
	err := r.conn(ctx).Scopes(ClinicScope(ctx)).Where("id IN ?", ids).Find(&medications).Error
	return medications, err
}

func (r *medicationRepository) Update(ctx context.Context, medication *entity.Medication) error {
	return r.conn(ctx).Save(medication).Error
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Medication{}, "id = ?", id).Error
}

func (r *medicationRepository) List(ctx context.Context, params *domainRepo.MedicationFilterParams) ([]entity.Medication, int64, error) {
	var medications []entity.Medication
	var total int64

	query := r.conn(ctx).Model(&entity.Medication{}).Scopes(ClinicScope(ctx))

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("quantity <= quantity_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&medications).Error

	return medications, total, err
}

func (r *medicationRepository) GetLowStock(ctx context.Context) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Where("quantity <= quantity_alert").
		Order("quantity ASC").
		Find(&medications).Error
	return medications, err
}

// AtomicDecrementQuantity atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE medications SET quantity = quantity - amount WHERE id = ? AND quantity >= amount
func (r *medicationRepository) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := r.conn(ctx).Model(&entity.Medication{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

// AtomicDecrementBatch atomically decrements stock for multiple medications in a single transaction.
// If any medication has insufficient stock, the entire transaction is rolled back.
func (r *medicationRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Medication{}).
				Where("id = ? AND quantity >= ?", id, amount).
				Update("quantity", gorm.Expr("quantity - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		// If any medications failed, rollback entire transaction
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// If we rolled back due to insufficient stock, return the failed IDs without the transaction error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically increments stock for multiple medications (receiving, returns).
func (r *medicationRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Medication{}).
				Where("id = ?", id).
				Update("quantity", gorm.Expr("quantity + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
