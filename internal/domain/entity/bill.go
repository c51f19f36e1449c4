package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PatientBill is the aggregate record of billable services for a patient,
// tracking total, paid and balance amounts. BalanceAmount must equal
// TotalAmount - PaidAmount after every mutation; callers go through
// Recompute to keep the three fields in sync.
type PatientBill struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	PatientName   string          `gorm:"size:255;not null" json:"patient_name"`
	BillNumber    string          `gorm:"size:100;uniqueIndex;not null" json:"bill_number"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	BalanceAmount decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"balance_amount"`
	Status        enum.BillStatus `gorm:"default:0" json:"status"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Patient  Patient       `gorm:"foreignKey:PatientID" json:"-"`
	Services []BillService `gorm:"foreignKey:BillID" json:"services,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *PatientBill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PatientBill model
func (PatientBill) TableName() string {
	return "patient_bills"
}

// Recompute recalculates BalanceAmount from TotalAmount and PaidAmount and
// derives the status: paid when the balance is zero or below, partial when
// anything has been paid, otherwise the current status is kept.
func (b *PatientBill) Recompute() {
	b.BalanceAmount = b.TotalAmount.Sub(b.PaidAmount)
	switch {
	case b.BalanceAmount.LessThanOrEqual(decimal.Zero):
		b.Status = enum.BillStatusPaid
	case b.PaidAmount.GreaterThan(decimal.Zero):
		b.Status = enum.BillStatusPartial
	}
}

// BillService is one billable line item on a patient bill.
// Position preserves insertion order so payments can reference lines by index.
type BillService struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
	Position    int             `gorm:"not null" json:"position"`
	ServiceName string          `gorm:"size:255;not null" json:"service_name"`
	Department  string          `gorm:"size:100;default:'general'" json:"department"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_price"`
	Paid        bool            `gorm:"default:false" json:"paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Bill PatientBill `gorm:"foreignKey:BillID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bill service
func (s *BillService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillService model
func (BillService) TableName() string {
	return "bill_services"
}
