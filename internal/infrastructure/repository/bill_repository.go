package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new patient bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *billRepository) Create(ctx context.Context, bill *entity.PatientBill) error {
	return r.conn(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PatientBill, error) {
	var bill entity.PatientBill
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByBillNumber(ctx context.Context, billNumber string) (*entity.PatientBill, error) {
	var bill entity.PatientBill
	err := r.conn(ctx).Scopes(ClinicScope(ctx)).First(&bill, "bill_number = ?", billNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithServices(ctx context.Context, id uuid.UUID) (*entity.PatientBill, error) {
	var bill entity.PatientBill
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.PatientBill) error {
	return r.conn(ctx).Save(bill).Error
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.PatientBill{}, "id = ?", id).Error
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.PatientBill, int64, error) {
	var bills []entity.PatientBill
	var total int64

	query := r.conn(ctx).Model(&entity.PatientBill{}).Scopes(ClinicScope(ctx))

	if params.Search != "" {
		query = query.Where("bill_number ILIKE ? OR patient_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PatientID != nil {
		query = query.Where("patient_id = ?", *params.PatientID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&bills).Error

	return bills, total, err
}

// FindActiveForPatient returns the most recent bill in any reusable state.
// Paid bills qualify so further services reopen the settled bill.
func (r *billRepository) FindActiveForPatient(ctx context.Context, patientID uuid.UUID) (*entity.PatientBill, error) {
	var bill entity.PatientBill
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Where("patient_id = ?", patientID).
		Where("status IN ?", []enum.BillStatus{
			enum.BillStatusPending,
			enum.BillStatusPartial,
			enum.BillStatusPaid,
			enum.BillStatusActive,
		}).
		Order("created_at DESC").
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

// ApplyPayment applies the payment in a single guarded UPDATE so the
// balance can never go below zero under concurrent payments.
func (r *billRepository) ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, status enum.BillStatus) (bool, error) {
	result := r.conn(ctx).Model(&entity.PatientBill{}).
		Where("id = ? AND balance_amount >= ?", id, amount).
		Updates(map[string]interface{}{
			"paid_amount":    gorm.Expr("paid_amount + ?", amount),
			"balance_amount": gorm.Expr("balance_amount - ?", amount),
			"status":         status,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *billRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := r.conn(ctx).Model(&entity.PatientBill{}).
		Unscoped().
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

type billServiceRepository struct {
	db *gorm.DB
}

// NewBillServiceRepository creates a new bill line item repository
func NewBillServiceRepository(db *gorm.DB) domainRepo.BillServiceRepository {
	return &billServiceRepository{db: db}
}

func (r *billServiceRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *billServiceRepository) CreateBatch(ctx context.Context, services []entity.BillService) error {
	if len(services) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&services).Error
}

func (r *billServiceRepository) GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillService, error) {
	var services []entity.BillService
	err := r.conn(ctx).
		Where("bill_id = ?", billID).
		Order("position ASC").
		Find(&services).Error
	return services, err
}

// MarkPaidByPositions skips positions that do not exist on the bill.
func (r *billServiceRepository) MarkPaidByPositions(ctx context.Context, billID uuid.UUID, positions []int, paidAt time.Time) error {
	if len(positions) == 0 {
		return nil
	}
	return r.conn(ctx).Model(&entity.BillService{}).
		Where("bill_id = ? AND position IN ?", billID, positions).
		Updates(map[string]interface{}{
			"paid":    true,
			"paid_at": paidAt,
		}).Error
}

func (r *billServiceRepository) MaxPosition(ctx context.Context, billID uuid.UUID) (int, error) {
	var max *int
	err := r.conn(ctx).Model(&entity.BillService{}).
		Where("bill_id = ?", billID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return -1, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *billServiceRepository) DeleteByBillID(ctx context.Context, billID uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.BillService{}, "bill_id = ?", billID).Error
}
