package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// MedicationRepository defines the interface for medication stock operations
type MedicationRepository interface {
	Create(ctx context.Context, medication *entity.Medication) error
	CreateBatch(ctx context.Context, medications []entity.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error)
	// GetByIDs retrieves multiple medications in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medication, error)
	Update(ctx context.Context, medication *entity.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MedicationFilterParams) ([]entity.Medication, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Medication, error)
	// AtomicDecrementQuantity atomically decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// AtomicDecrementBatch atomically decrements stock for multiple medications.
	// Returns IDs that failed on insufficient stock; any failure rolls back the batch.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple medications (receiving, returns).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// MedicationFilterParams contains filtering parameters for medication queries
type MedicationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
