package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
	"github.com/rs/zerolog"
)

// VisitService handles clinical visits
type VisitService struct {
	visitRepo   repository.VisitRepository
	patientRepo repository.PatientRepository
	queueRepo   repository.QueueRepository
	billing     *BillingService
	logger      zerolog.Logger
}

// NewVisitService creates a new visit service
func NewVisitService(
	visitRepo repository.VisitRepository,
	patientRepo repository.PatientRepository,
	queueRepo repository.QueueRepository,
	billing *BillingService,
	logger zerolog.Logger,
) *VisitService {
	return &VisitService{
		visitRepo:   visitRepo,
		patientRepo: patientRepo,
		queueRepo:   queueRepo,
		billing:     billing,
		logger:      logger,
	}
}

// StartVisitInput represents the start visit input
type StartVisitInput struct {
	PatientID uuid.UUID
	QueueID   *uuid.UUID
	Complaint string
}

// StartVisit opens a visit for a patient. A patient can only hold one
// open visit at a time.
func (s *VisitService) StartVisit(ctx context.Context, actor entity.Actor, input *StartVisitInput) (*entity.Visit, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	open, err := s.visitRepo.GetOpenForPatient(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.NewConflictError("Patient already has an open visit")
	}

	visit := &entity.Visit{
		ClinicID:  actor.ClinicID,
		PatientID: input.PatientID,
		DoctorID:  actor.ID,
		QueueID:   input.QueueID,
		Complaint: input.Complaint,
		Status:    enum.VisitStatusOpen,
	}
	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}

	// Pull the queue entry into in-progress when the visit came from the queue
	if input.QueueID != nil {
		if err := s.queueRepo.UpdateStatus(ctx, *input.QueueID, enum.QueueStatusInProgress); err != nil {
			s.logger.Warn().Err(err).
				Str("queue_id", input.QueueID.String()).
				Msg("failed to move queue entry to in-progress, continuing")
		}
	}

	return visit, nil
}

// UpdateVisitInput represents the visit update input
type UpdateVisitInput struct {
	Complaint *string
	Diagnosis *string
	Notes     *string
}

// UpdateVisit updates an open visit's clinical notes
func (s *VisitService) UpdateVisit(ctx context.Context, id uuid.UUID, input *UpdateVisitInput) (*entity.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}
	if visit.Status != enum.VisitStatusOpen {
		return nil, apperror.NewConflictError("Visit is closed")
	}

	if input.Complaint != nil {
		visit.Complaint = *input.Complaint
	}
	if input.Diagnosis != nil {
		visit.Diagnosis = input.Diagnosis
	}
	if input.Notes != nil {
		visit.Notes = input.Notes
	}

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// CloseVisit closes a visit, appending its billable services to the
// patient's active bill (creating one when none exists). The queue entry
// update is best-effort: a failure is logged, never fatal.
func (s *VisitService) CloseVisit(ctx context.Context, actor entity.Actor, id uuid.UUID, services []ServiceInput) (*entity.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}
	if visit.Status != enum.VisitStatusOpen {
		return nil, apperror.NewConflictError("Visit is already closed")
	}

	if len(services) > 0 {
		if _, err := s.billing.AppendToActiveBill(ctx, actor, visit.PatientID, services); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	visit.Status = enum.VisitStatusClosed
	visit.ClosedAt = &now
	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	if visit.QueueID != nil {
		if err := s.queueRepo.UpdateStatus(ctx, *visit.QueueID, enum.QueueStatusCompleted); err != nil {
			s.logger.Warn().Err(err).
				Str("queue_id", visit.QueueID.String()).
				Msg("failed to complete queue entry on visit close, continuing")
		}
	}

	return visit, nil
}

// GetVisit retrieves a visit by ID
func (s *VisitService) GetVisit(ctx context.Context, id uuid.UUID) (*entity.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}
	return visit, nil
}

// ListVisits lists visits with filtering
func (s *VisitService) ListVisits(ctx context.Context, params *repository.VisitFilterParams) (*pagination.PaginatedResult[entity.Visit], error) {
	visits, total, err := s.visitRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(visits, pag), nil
}

// GetPatientVisits lists a patient's visit history
func (s *VisitService) GetPatientVisits(ctx context.Context, patientID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Visit], error) {
	visits, total, err := s.visitRepo.GetByPatientID(ctx, patientID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(visits, pag), nil
}
