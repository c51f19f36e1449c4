package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LabOrder represents a laboratory order for one or more tests
type LabOrder struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	VisitID     *uuid.UUID          `gorm:"type:uuid;index" json:"visit_id,omitempty"`
	OrderNumber string              `gorm:"size:100;unique;not null" json:"order_number"`
	OrderedBy   uuid.UUID           `gorm:"type:uuid;column:ordered_by" json:"ordered_by"`
	Status      enum.LabOrderStatus `gorm:"default:0" json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Patient Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Tests   []LabTest `gorm:"foreignKey:LabOrderID" json:"tests,omitempty"`
}

// BeforeCreate generates a UUID before creating a new lab order
func (o *LabOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LabOrder model
func (LabOrder) TableName() string {
	return "lab_orders"
}

// LabTest represents a single test on a lab order
type LabTest struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	LabOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"lab_order_id"`
	TestName   string          `gorm:"size:255;not null" json:"test_name"`
	Price      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Result     *string         `gorm:"type:text" json:"result,omitempty"`
	ResultedBy *uuid.UUID      `gorm:"type:uuid;column:resulted_by" json:"resulted_by,omitempty"`
	ResultedAt *time.Time      `json:"resulted_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	LabOrder LabOrder `gorm:"foreignKey:LabOrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new lab test
func (t *LabTest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LabTest model
func (LabTest) TableName() string {
	return "lab_tests"
}
