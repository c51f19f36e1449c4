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

type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository creates a new clinic repository
func NewClinicRepository(db *gorm.DB) domainRepo.ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *clinicRepository) Create(ctx context.Context, clinic *entity.Clinic) error {
	return r.conn(ctx).Create(clinic).Error
}

func (r *clinicRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := r.conn(ctx).First(&clinic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &clinic, err
}

func (r *clinicRepository) GetByCode(ctx context.Context, code string) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := r.conn(ctx).First(&clinic, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &clinic, err
}

func (r *clinicRepository) Update(ctx context.Context, clinic *entity.Clinic) error {
	return r.conn(ctx).Save(clinic).Error
}

func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Clinic{}, "id = ?", id).Error
}

func (r *clinicRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.Clinic{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *clinicRepository) ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Clinic, int64, error) {
	var clinics []entity.Clinic
	var total int64

	query := r.conn(ctx).Model(&entity.Clinic{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&clinics).Error

	return clinics, total, err
}

func (r *clinicRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.Clinic{}).Count(&count).Error
	return count, err
}
