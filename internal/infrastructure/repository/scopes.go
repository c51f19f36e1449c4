package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// ClinicIDKey is the context key for clinic ID
	ClinicIDKey ctxKey = "clinic_id"
	// SkipClinicScopeKey is the context key for skipping clinic scope (super admin)
	SkipClinicScopeKey ctxKey = "skip_clinic_scope"
)

// ClinicScope returns a GORM scope that filters by clinic
// This should be applied to all queries for clinic-scoped entities
// If SkipClinicScopeKey is true in context (super admin), returns all records
func ClinicScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		// Check if clinic scope should be skipped (super admin)
		if skipScope, ok := ctx.Value(SkipClinicScopeKey).(bool); ok && skipScope {
			return db // Return unfiltered query for super admins
		}

		clinicID, ok := ctx.Value(ClinicIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if clinic context missing
			// This prevents accidental cross-clinic data access
			return db.Where("1 = 0")
		}
		return db.Where("clinic_id = ?", clinicID)
	}
}

// WithSkipClinicScope adds skip clinic scope flag to context (for super admins)
func WithSkipClinicScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipClinicScopeKey, skip)
}

// WithClinic adds clinic ID to context
func WithClinic(ctx context.Context, clinicID uuid.UUID) context.Context {
	return context.WithValue(ctx, ClinicIDKey, clinicID)
}

// GetClinicID extracts clinic ID from context
func GetClinicID(ctx context.Context) (uuid.UUID, bool) {
	clinicID, ok := ctx.Value(ClinicIDKey).(uuid.UUID)
	return clinicID, ok
}
