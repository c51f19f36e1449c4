package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	GetByMRN(ctx context.Context, mrn string) (*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PatientFilterParams) ([]entity.Patient, int64, error)
	ListWithCursor(ctx context.Context, params *PatientCursorFilterParams) ([]entity.Patient, error)
	// CountRegisteredInYear counts patients registered in the given year,
	// used to derive the next MRN sequence number.
	CountRegisteredInYear(ctx context.Context, year int) (int64, error)
}

// PatientFilterParams contains filtering parameters for patient queries
type PatientFilterParams struct {
	Pagination       *pagination.PaginationParams
	Search           string
	Gender           string
	RegisteredAfter  *time.Time
	RegisteredBefore *time.Time
	SortBy           string
	SortOrder        string
}

// PatientCursorFilterParams contains cursor-based filtering for patient queries
type PatientCursorFilterParams struct {
	Cursor *pagination.CursorParams
	Search string
	Gender string
}
