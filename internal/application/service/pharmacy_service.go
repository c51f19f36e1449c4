package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// PharmacyService handles medication stock and dispensing
type PharmacyService struct {
	medicationRepo repository.MedicationRepository
	billing        *BillingService
}

// NewPharmacyService creates a new pharmacy service
func NewPharmacyService(medicationRepo repository.MedicationRepository, billing *BillingService) *PharmacyService {
	return &PharmacyService{medicationRepo: medicationRepo, billing: billing}
}

// DispenseItemInput is one medication line to dispense
type DispenseItemInput struct {
	MedicationID uuid.UUID
	Quantity     int
}

// Dispense atomically decrements stock for the requested medications and
// appends the charges to the patient's active bill. Insufficient stock
// fails the whole dispense naming the offending medications.
func (s *PharmacyService) Dispense(ctx context.Context, actor entity.Actor, patientID uuid.UUID, items []DispenseItemInput) (*entity.PatientBill, error) {
	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("At least one item is required")
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be positive",
			}})
		}
	}

	// Batch fetch all medications in one query (prevents N+1)
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.MedicationID
	}
	medications, err := s.medicationRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	medMap := make(map[uuid.UUID]*entity.Medication, len(medications))
	for i := range medications {
		medMap[medications[i].ID] = &medications[i]
	}

	decrements := make(map[uuid.UUID]int, len(items))
	services := make([]ServiceInput, 0, len(items))
	for _, item := range items {
		med, exists := medMap[item.MedicationID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Medication %s", item.MedicationID))
		}
		decrements[med.ID] = item.Quantity
		services = append(services, ServiceInput{
			ServiceName: med.Name,
			Department:  "pharmacy",
			Quantity:    item.Quantity,
			UnitPrice:   med.SellingPrice,
		})
	}

	failedIDs, err := s.medicationRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if med, exists := medMap[id]; exists {
				failedNames = append(failedNames, med.Name)
			}
		}
		return nil, apperror.NewBadRequestError(
			"Insufficient stock for: " + strings.Join(failedNames, ", "))
	}

	bill, err := s.billing.AppendToActiveBill(ctx, actor, patientID, services)
	if err != nil {
		// Billing failed after stock was taken; put it back
		_ = s.medicationRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}
	return bill, nil
}

// CreateMedication adds a medication to the formulary
func (s *PharmacyService) CreateMedication(ctx context.Context, actor entity.Actor, medication *entity.Medication) (*entity.Medication, error) {
	if medication.Name == "" {
		return nil, apperror.NewBadRequestError("Medication name is required")
	}
	if medication.Code == "" {
		return nil, apperror.NewBadRequestError("Medication code is required")
	}
	medication.ClinicID = actor.ClinicID
	if err := s.medicationRepo.Create(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

// GetMedication retrieves a medication by ID
func (s *PharmacyService) GetMedication(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	medication, err := s.medicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, apperror.NewNotFoundError("Medication")
	}
	return medication, nil
}

// UpdateMedication updates medication details
func (s *PharmacyService) UpdateMedication(ctx context.Context, medication *entity.Medication) (*entity.Medication, error) {
	existing, err := s.medicationRepo.GetByID(ctx, medication.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Medication")
	}
	if err := s.medicationRepo.Update(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

// DeleteMedication soft-deletes a medication
func (s *PharmacyService) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	medication, err := s.medicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if medication == nil {
		return apperror.NewNotFoundError("Medication")
	}
	return s.medicationRepo.Delete(ctx, id)
}

// ListMedications lists medications with filtering
func (s *PharmacyService) ListMedications(ctx context.Context, params *repository.MedicationFilterParams) (*pagination.PaginatedResult[entity.Medication], error) {
	medications, total, err := s.medicationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(medications, pag), nil
}

// GetLowStock returns medications at or below their alert threshold
func (s *PharmacyService) GetLowStock(ctx context.Context) ([]entity.Medication, error) {
	return s.medicationRepo.GetLowStock(ctx)
}
