package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// LabOrderRepository defines the interface for lab order operations
type LabOrderRepository interface {
	Create(ctx context.Context, order *entity.LabOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LabOrder, error)
	GetWithTests(ctx context.Context, id uuid.UUID) (*entity.LabOrder, error)
	Update(ctx context.Context, order *entity.LabOrder) error
	List(ctx context.Context, params *LabOrderFilterParams) ([]entity.LabOrder, int64, error)
	CountCreatedInYear(ctx context.Context, year int) (int64, error)
}

// LabOrderFilterParams contains filtering parameters for lab order queries
type LabOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.LabOrderStatus
	PatientID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// LabTestRepository defines the interface for lab test result operations
type LabTestRepository interface {
	CreateBatch(ctx context.Context, tests []entity.LabTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LabTest, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.LabTest, error)
	Update(ctx context.Context, test *entity.LabTest) error
}
