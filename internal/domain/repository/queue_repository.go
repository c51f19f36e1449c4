package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// QueueRepository defines the interface for patient queue operations
type QueueRepository interface {
	Create(ctx context.Context, entry *entity.QueueEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.QueueEntry, error)
	Update(ctx context.Context, entry *entity.QueueEntry) error
	List(ctx context.Context, params *QueueFilterParams) ([]entity.QueueEntry, int64, error)
	// NextQueueNumber returns the next sequence number for a department on
	// the given date. Numbering restarts at 1 each day.
	NextQueueNumber(ctx context.Context, department string, date time.Time) (int, error)
	// FindWaitingForPatient returns the patient's unfinished queue entry for
	// the given date, or a not-found error.
	FindWaitingForPatient(ctx context.Context, patientID uuid.UUID, date time.Time) (*entity.QueueEntry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QueueStatus) error
}

// QueueFilterParams contains filtering parameters for queue queries
type QueueFilterParams struct {
	Pagination *pagination.PaginationParams
	Department string
	Status     *enum.QueueStatus
	Date       *time.Time
	SortBy     string
	SortOrder  string
}
