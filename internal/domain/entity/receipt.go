package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IntList is a JSON-encoded slice of line positions stored in a jsonb column.
type IntList []int

// Value implements the driver.Valuer interface
func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		*l = IntList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for IntList")
	}
	return json.Unmarshal(b, l)
}

// ReceiptLine is a snapshot of a bill line at the moment of payment, kept on
// the receipt so reprints stay stable even if the bill changes afterwards.
type ReceiptLine struct {
	Position    int             `json:"position"`
	ServiceName string          `json:"service_name"`
	Department  string          `json:"department"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// ReceiptLines is a JSON-encoded slice of receipt line snapshots.
type ReceiptLines []ReceiptLine

// Value implements the driver.Valuer interface
func (r ReceiptLines) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (r *ReceiptLines) Scan(value interface{}) error {
	if value == nil {
		*r = ReceiptLines{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for ReceiptLines")
	}
	return json.Unmarshal(b, r)
}

// Receipt records a single payment against a patient bill.
type Receipt struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ReceiptNumber     string             `gorm:"size:100;uniqueIndex;not null" json:"receipt_number"`
	BillID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"bill_id"`
	BillNumber        string             `gorm:"size:100;not null" json:"bill_number"`
	PatientID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	PatientName       string             `gorm:"size:255;not null" json:"patient_name"`
	PaymentAmount     decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"payment_amount"`
	PaymentMethod     string             `gorm:"size:50;not null;default:'cash'" json:"payment_method"`
	PaymentDate       time.Time          `gorm:"not null;index" json:"payment_date"`
	PaidServicePos    IntList            `gorm:"type:jsonb;column:paid_service_positions" json:"paid_service_positions"`
	ServiceDetails    ReceiptLines       `gorm:"type:jsonb" json:"service_details"`
	Notes             string             `gorm:"type:text" json:"notes,omitempty"`
	FromLease         bool               `gorm:"default:false" json:"from_lease"`
	LeaseDetails      string             `gorm:"type:text" json:"lease_details,omitempty"`
	CashierID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName       string             `gorm:"size:255;not null" json:"cashier_name"`
	Status            enum.ReceiptStatus `gorm:"default:0" json:"status"`
	VoidedBy          *uuid.UUID         `gorm:"type:uuid" json:"voided_by,omitempty"`
	VoidedAt          *time.Time         `json:"voided_at,omitempty"`
	VoidReason        string             `gorm:"type:text" json:"void_reason,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Bill PatientBill `gorm:"foreignKey:BillID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
