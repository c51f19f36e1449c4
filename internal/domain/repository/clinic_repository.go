package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// ClinicRepository defines the interface for clinic data operations
type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Clinic, error)
	GetByCode(ctx context.Context, code string) (*entity.Clinic, error)
	Update(ctx context.Context, clinic *entity.Clinic) error
	Delete(ctx context.Context, id uuid.UUID) error
	CodeExists(ctx context.Context, code string) (bool, error)
	ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Clinic, int64, error)
	Count(ctx context.Context) (int64, error)
}
