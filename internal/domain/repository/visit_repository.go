package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// VisitRepository defines the interface for clinical visit operations
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Visit, error)
	Update(ctx context.Context, visit *entity.Visit) error
	List(ctx context.Context, params *VisitFilterParams) ([]entity.Visit, int64, error)
	GetByPatientID(ctx context.Context, patientID uuid.UUID, params *pagination.PaginationParams) ([]entity.Visit, int64, error)
	// GetOpenForPatient returns the patient's currently open visit, or a
	// not-found error when none is open.
	GetOpenForPatient(ctx context.Context, patientID uuid.UUID) (*entity.Visit, error)
}

// VisitFilterParams contains filtering parameters for visit queries
type VisitFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.VisitStatus
	DoctorID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
