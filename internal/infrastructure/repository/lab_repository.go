package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type labOrderRepository struct {
	db *gorm.DB
}

// NewLabOrderRepository creates a new lab order repository
func NewLabOrderRepository(db *gorm.DB) domainRepo.LabOrderRepository {
	return &labOrderRepository{db: db}
}

func (r *labOrderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *labOrderRepository) Create(ctx context.Context, order *entity.LabOrder) error {
	return r.conn(ctx).Create(order).Error
}

func (r *labOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LabOrder, error) {
	var order entity.LabOrder
	err := r.conn(ctx).Scopes(ClinicScope(ctx)).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *labOrderRepository) GetWithTests(ctx context.Context, id uuid.UUID) (*entity.LabOrder, error) {
	var order entity.LabOrder
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Patient").
		Preload("Tests").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *labOrderRepository) Update(ctx context.Context, order *entity.LabOrder) error {
	return r.conn(ctx).Save(order).Error
}

func (r *labOrderRepository) List(ctx context.Context, params *domainRepo.LabOrderFilterParams) ([]entity.LabOrder, int64, error) {
	var orders []entity.LabOrder
	var total int64

	query := r.conn(ctx).Model(&entity.LabOrder{}).Scopes(ClinicScope(ctx))

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
		Preload("Patient").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *labOrderRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := r.conn(ctx).Model(&entity.LabOrder{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

type labTestRepository struct {
	db *gorm.DB
}

// NewLabTestRepository creates a new lab test repository
func NewLabTestRepository(db *gorm.DB) domainRepo.LabTestRepository {
	return &labTestRepository{db: db}
}

func (r *labTestRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *labTestRepository) CreateBatch(ctx context.Context, tests []entity.LabTest) error {
	if len(tests) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&tests).Error
}

func (r *labTestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LabTest, error) {
	var test entity.LabTest
	err := r.conn(ctx).First(&test, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &test, err
}

func (r *labTestRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	err := r.conn(ctx).
		Where("lab_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&tests).Error
	return tests, err
}

func (r *labTestRepository) Update(ctx context.Context, test *entity.LabTest) error {
	return r.conn(ctx).Save(test).Error
}
