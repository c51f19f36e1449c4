package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/pagination"
	"gorm.io/gorm"
)

type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *gorm.DB) domainRepo.VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *visitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	return r.conn(ctx).Create(visit).Error
}

func (r *visitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Patient").
		First(&visit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &visit, err
}

func (r *visitRepository) Update(ctx context.Context, visit *entity.Visit) error {
	return r.conn(ctx).Save(visit).Error
}

func (r *visitRepository) List(ctx context.Context, params *domainRepo.VisitFilterParams) ([]entity.Visit, int64, error) {
	var visits []entity.Visit
	var total int64

	query := r.conn(ctx).Model(&entity.Visit{}).Scopes(ClinicScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.DoctorID != nil {
		query = query.Where("doctor_id = ?", *params.DoctorID)
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
		Find(&visits).Error

	return visits, total, err
}

func (r *visitRepository) GetByPatientID(ctx context.Context, patientID uuid.UUID, params *pagination.PaginationParams) ([]entity.Visit, int64, error) {
	var visits []entity.Visit
	var total int64

	query := r.conn(ctx).Model(&entity.Visit{}).
		Scopes(ClinicScope(ctx)).
		Where("patient_id = ?", patientID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&visits).Error

	return visits, total, err
}

func (r *visitRepository) GetOpenForPatient(ctx context.Context, patientID uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Where("patient_id = ? AND status = ?", patientID, enum.VisitStatusOpen).
		Order("created_at DESC").
		First(&visit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &visit, err
}
