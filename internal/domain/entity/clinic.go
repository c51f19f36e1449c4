package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clinic represents a facility (branch) in the hospital network.
// All patient, billing and accounting records are scoped to a clinic.
type Clinic struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:50;unique;not null" json:"code"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Settings  ClinicSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Staff []User `gorm:"foreignKey:ClinicID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new clinic
func (c *Clinic) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Clinic model
func (Clinic) TableName() string {
	return "clinics"
}

// ClinicSettings holds per-clinic configuration
type ClinicSettings struct {
	Currency      string `json:"currency,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	ReceiptHeader string `json:"receipt_header,omitempty"`
	ReceiptFooter string `json:"receipt_footer,omitempty"`
	BillPrefix    string `json:"bill_prefix,omitempty"`
	ReceiptPrefix string `json:"receipt_prefix,omitempty"`
}
