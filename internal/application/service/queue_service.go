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
)

// QueueService handles the daily patient queue
type QueueService struct {
	queueRepo   repository.QueueRepository
	patientRepo repository.PatientRepository
}

// NewQueueService creates a new queue service
func NewQueueService(queueRepo repository.QueueRepository, patientRepo repository.PatientRepository) *QueueService {
	return &QueueService{queueRepo: queueRepo, patientRepo: patientRepo}
}

// JoinQueue adds a patient to today's queue for a department. A patient
// can only hold one unfinished entry per day.
func (s *QueueService) JoinQueue(ctx context.Context, actor entity.Actor, patientID uuid.UUID, department string) (*entity.QueueEntry, error) {
	if department == "" {
		department = "general"
	}

	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	today := time.Now()
	existing, err := s.queueRepo.FindWaitingForPatient(ctx, patientID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Patient is already in the queue")
	}

	number, err := s.queueRepo.NextQueueNumber(ctx, department, today)
	if err != nil {
		return nil, err
	}

	entry := &entity.QueueEntry{
		ClinicID:    actor.ClinicID,
		PatientID:   patientID,
		QueueDate:   time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()),
		QueueNumber: number,
		Department:  department,
		Status:      enum.QueueStatusWaiting,
	}
	if err := s.queueRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CallNext moves a waiting queue entry to in-progress
func (s *QueueService) CallNext(ctx context.Context, entryID uuid.UUID) (*entity.QueueEntry, error) {
	entry, err := s.queueRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Queue entry")
	}
	if entry.Status != enum.QueueStatusWaiting {
		return nil, apperror.NewConflictError("Queue entry is not waiting")
	}

	if err := s.queueRepo.UpdateStatus(ctx, entryID, enum.QueueStatusInProgress); err != nil {
		return nil, err
	}
	return s.queueRepo.GetByID(ctx, entryID)
}

// CompleteEntry marks a queue entry completed
func (s *QueueService) CompleteEntry(ctx context.Context, entryID uuid.UUID) error {
	entry, err := s.queueRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewNotFoundError("Queue entry")
	}
	return s.queueRepo.UpdateStatus(ctx, entryID, enum.QueueStatusCompleted)
}

// CancelEntry removes a patient from the queue
func (s *QueueService) CancelEntry(ctx context.Context, entryID uuid.UUID) error {
	entry, err := s.queueRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewNotFoundError("Queue entry")
	}
	if entry.Status == enum.QueueStatusCompleted {
		return apperror.NewConflictError("Completed queue entries cannot be cancelled")
	}
	return s.queueRepo.UpdateStatus(ctx, entryID, enum.QueueStatusCancelled)
}

// ListQueue lists queue entries with filtering
func (s *QueueService) ListQueue(ctx context.Context, params *repository.QueueFilterParams) (*pagination.PaginatedResult[entity.QueueEntry], error) {
	entries, total, err := s.queueRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}
