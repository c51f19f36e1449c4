package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// PatientService handles patient registration and lookup
type PatientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// RegisterPatientInput represents the patient registration input
type RegisterPatientInput struct {
	FirstName        string
	LastName         string
	Gender           string
	DateOfBirth      time.Time
	Phone            *string
	Address          *string
	NextOfKin        *string
	NextOfKinTel     *string
	BloodGroup       *string
	Allergies        *string
	InsuranceName    *string
	InsuranceNumber  *string
}

// RegisterPatient registers a new patient with a generated MRN
func (s *PatientService) RegisterPatient(ctx context.Context, actor entity.Actor, input *RegisterPatientInput) (*entity.Patient, error) {
	var fieldErrors []apperror.FieldError
	if input.FirstName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "first_name", Message: "first name is required"})
	}
	if input.LastName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "last_name", Message: "last name is required"})
	}
	if input.Gender == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gender", Message: "gender is required"})
	}
	if input.DateOfBirth.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date_of_birth", Message: "date of birth is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	now := time.Now()
	count, err := s.patientRepo.CountRegisteredInYear(ctx, now.Year())
	if err != nil {
		return nil, err
	}
	mrn := fmt.Sprintf("PT-%d-%05d", now.Year(), count+1)

	patient := &entity.Patient{
		ClinicID:        actor.ClinicID,
		MRN:             mrn,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Gender:          input.Gender,
		DateOfBirth:     input.DateOfBirth,
		Phone:           input.Phone,
		Address:         input.Address,
		NextOfKin:       input.NextOfKin,
		NextOfKinTel:    input.NextOfKinTel,
		BloodGroup:      input.BloodGroup,
		Allergies:       input.Allergies,
		InsuranceName:   input.InsuranceName,
		InsuranceNumber: input.InsuranceNumber,
		RegisteredBy:    actor.ID,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// GetPatientByMRN retrieves a patient by medical record number
func (s *PatientService) GetPatientByMRN(ctx context.Context, mrn string) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByMRN(ctx, mrn)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// UpdatePatientInput represents the patient update input
type UpdatePatientInput struct {
	FirstName       *string
	LastName        *string
	Gender          *string
	Phone           *string
	Address         *string
	NextOfKin       *string
	NextOfKinTel    *string
	BloodGroup      *string
	Allergies       *string
	InsuranceName   *string
	InsuranceNumber *string
}

// UpdatePatient updates patient demographics. MRN never changes.
func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, input *UpdatePatientInput) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.Gender != nil {
		patient.Gender = *input.Gender
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Address != nil {
		patient.Address = input.Address
	}
	if input.NextOfKin != nil {
		patient.NextOfKin = input.NextOfKin
	}
	if input.NextOfKinTel != nil {
		patient.NextOfKinTel = input.NextOfKinTel
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = input.BloodGroup
	}
	if input.Allergies != nil {
		patient.Allergies = input.Allergies
	}
	if input.InsuranceName != nil {
		patient.InsuranceName = input.InsuranceName
	}
	if input.InsuranceNumber != nil {
		patient.InsuranceNumber = input.InsuranceNumber
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// DeletePatient soft-deletes a patient
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return apperror.NewNotFoundError("Patient")
	}
	return s.patientRepo.Delete(ctx, id)
}

// ListPatients lists patients with filtering
func (s *PatientService) ListPatients(ctx context.Context, params *repository.PatientFilterParams) (*pagination.PaginatedResult[entity.Patient], error) {
	patients, total, err := s.patientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(patients, pag), nil
}

// ListPatientsWithCursor lists patients with cursor-based pagination
func (s *PatientService) ListPatientsWithCursor(ctx context.Context, params *repository.PatientCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Patient], error) {
	patients, err := s.patientRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(patients, params.Cursor.Limit,
		func(p entity.Patient) string { return p.ID.String() },
		func(p entity.Patient) time.Time { return p.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}
