package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashierShift bounds the period in which a cashier may record payments.
// A cashier has at most one open shift at a time; payments are rejected
// outside an open shift.
type CashierShift struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"clinic_id"`
	CashierID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName    string           `gorm:"size:255;not null" json:"cashier_name"`
	OpeningBalance decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"opening_balance"`
	ClosingBalance decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"closing_balance"`
	ExpectedCash   decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"expected_cash"`
	TotalCollected decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"total_collected"`
	ReceiptCount   int64            `gorm:"default:0" json:"receipt_count"`
	Status         enum.ShiftStatus `gorm:"default:0;index" json:"status"`
	OpenedAt       time.Time        `gorm:"not null" json:"opened_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	Notes          string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *CashierShift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashierShift model
func (CashierShift) TableName() string {
	return "cashier_shifts"
}

// IsOpen reports whether the shift is still accepting payments.
func (s *CashierShift) IsOpen() bool {
	return s.Status == enum.ShiftStatusOpen
}

// Variance is the difference between the counted closing balance and the
// expected cash at close. Zero means the drawer balanced.
func (s *CashierShift) Variance() decimal.Decimal {
	return s.ClosingBalance.Sub(s.ExpectedCash)
}
