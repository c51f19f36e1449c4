package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/infrastructure/database"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
	"gorm.io/gorm"
)

// ClinicService handles facility (branch) management
type ClinicService struct {
	clinicRepo repository.ClinicRepository
	db         *gorm.DB
}

// NewClinicService creates a new clinic service
func NewClinicService(clinicRepo repository.ClinicRepository, db *gorm.DB) *ClinicService {
	return &ClinicService{clinicRepo: clinicRepo, db: db}
}

// CreateClinicInput represents the create clinic input
type CreateClinicInput struct {
	Name    string
	Code    string
	Address *string
	Phone   *string
}

// CreateClinic creates a new facility and seeds its chart of accounts
func (s *ClinicService) CreateClinic(ctx context.Context, input *CreateClinicInput) (*entity.Clinic, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Code == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "code", Message: "code is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	exists, err := s.clinicRepo.CodeExists(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("Clinic code already in use")
	}

	clinic := &entity.Clinic{
		Name:    input.Name,
		Code:    input.Code,
		Address: input.Address,
		Phone:   input.Phone,
		Settings: entity.ClinicSettings{
			Currency: "KES",
			Timezone: "Africa/Nairobi",
		},
	}

	if err := s.clinicRepo.Create(ctx, clinic); err != nil {
		return nil, err
	}

	// New facilities start with the default chart of accounts
	if err := database.SeedChartOfAccounts(s.db, clinic.ID); err != nil {
		return nil, err
	}

	return clinic, nil
}

// GetClinic returns a clinic by ID
func (s *ClinicService) GetClinic(ctx context.Context, id uuid.UUID) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.NewNotFoundError("Clinic")
	}
	return clinic, nil
}

// ListClinics lists all facilities
func (s *ClinicService) ListClinics(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Clinic], error) {
	clinics, total, err := s.clinicRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clinics, pag), nil
}

// UpdateClinicInput represents the update clinic input
type UpdateClinicInput struct {
	Name     *string
	Address  *string
	Phone    *string
	Settings *entity.ClinicSettings
}

// UpdateClinic updates a clinic's details and settings
func (s *ClinicService) UpdateClinic(ctx context.Context, id uuid.UUID, input *UpdateClinicInput) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.NewNotFoundError("Clinic")
	}

	if input.Name != nil {
		clinic.Name = *input.Name
	}
	if input.Address != nil {
		clinic.Address = input.Address
	}
	if input.Phone != nil {
		clinic.Phone = input.Phone
	}
	if input.Settings != nil {
		clinic.Settings = *input.Settings
	}

	if err := s.clinicRepo.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

// DeleteClinic soft-deletes a facility. Guarded at the route level to
// super admins only.
func (s *ClinicService) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	clinic, err := s.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if clinic == nil {
		return apperror.NewNotFoundError("Clinic")
	}
	return s.clinicRepo.Delete(ctx, id)
}
