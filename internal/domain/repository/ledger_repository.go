package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LedgerRepository defines the interface for ledger account operations
type LedgerRepository interface {
	Create(ctx context.Context, account *entity.LedgerAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerAccount, error)
	// GetByCode returns the first account matching the code by creation
	// order. Codes are not unique; duplicates resolve to the oldest.
	GetByCode(ctx context.Context, code string) (*entity.LedgerAccount, error)
	Update(ctx context.Context, account *entity.LedgerAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every account as a flat slice; callers assemble the tree
	List(ctx context.Context) ([]entity.LedgerAccount, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]entity.LedgerAccount, error)
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)
	// AdjustBalance atomically applies a signed delta to the account balance
	// with a single UPDATE, never read-modify-write.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}
