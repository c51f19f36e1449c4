package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Medication represents a drug in the pharmacy inventory
type Medication struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Code          string          `gorm:"size:100;unique;not null" json:"code"`
	Category      *string         `gorm:"size:100" json:"category,omitempty"`
	Unit          string          `gorm:"size:50;default:'tablet'" json:"unit"`
	Quantity      int             `gorm:"default:0" json:"quantity"`
	QuantityAlert int             `gorm:"default:0" json:"quantity_alert"`
	BuyingPrice   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"buying_price"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"selling_price"`
	ExpiryDate    *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new medication
func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Medication model
func (Medication) TableName() string {
	return "medications"
}

// IsLowStock reports whether the stock level is at or below the alert level
func (m *Medication) IsLowStock() bool {
	return m.QuantityAlert > 0 && m.Quantity <= m.QuantityAlert
}
