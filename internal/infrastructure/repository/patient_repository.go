package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/pagination"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.conn(ctx).Create(patient).Error
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.conn(ctx).Scopes(ClinicScope(ctx)).First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (r *patientRepository) GetByMRN(ctx context.Context, mrn string) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.conn(ctx).Scopes(ClinicScope(ctx)).First(&patient, "mrn = ?", mrn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.conn(ctx).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Patient{}, "id = ?", id).Error
}

func (r *patientRepository) List(ctx context.Context, params *domainRepo.PatientFilterParams) ([]entity.Patient, int64, error) {
	var patients []entity.Patient
	var total int64

	query := r.conn(ctx).Model(&entity.Patient{}).Scopes(ClinicScope(ctx))

	if params.Search != "" {
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR mrn ILIKE ? OR phone ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Gender != "" {
		query = query.Where("gender = ?", params.Gender)
	}

	if params.RegisteredAfter != nil {
		query = query.Where("created_at >= ?", *params.RegisteredAfter)
	}

	if params.RegisteredBefore != nil {
		query = query.Where("created_at <= ?", *params.RegisteredBefore)
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
		Order(sortBy + " " + sortOrder).
		Find(&patients).Error

	return patients, total, err
}

// ListWithCursor returns patients using cursor-based pagination
func (r *patientRepository) ListWithCursor(ctx context.Context, params *domainRepo.PatientCursorFilterParams) ([]entity.Patient, error) {
	var patients []entity.Patient

	params.Cursor.Validate()
	query := r.conn(ctx).Model(&entity.Patient{}).Scopes(ClinicScope(ctx))

	if params.Search != "" {
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR mrn ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Gender != "" {
		query = query.Where("gender = ?", params.Gender)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&patients).Error

	return patients, err
}

func (r *patientRepository) CountRegisteredInYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := r.conn(ctx).Model(&entity.Patient{}).
		Unscoped().
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}
