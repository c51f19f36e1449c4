package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrder tracks a medication order through its approval workflow:
// draft -> submitted -> approved -> received, with cancellation allowed
// before receipt. Receiving increments medication stock.
type PurchaseOrder struct {
	ID           uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID     uuid.UUID                `gorm:"type:uuid;not null;index" json:"clinic_id"`
	OrderNumber  string                   `gorm:"size:100;uniqueIndex;not null" json:"order_number"`
	SupplierID   uuid.UUID                `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Status       enum.PurchaseOrderStatus `gorm:"default:0;index" json:"status"`
	TotalAmount  decimal.Decimal          `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Notes        string                   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy    uuid.UUID                `gorm:"type:uuid;column:created_by" json:"created_by"`
	SubmittedBy  *uuid.UUID               `gorm:"type:uuid" json:"submitted_by,omitempty"`
	SubmittedAt  *time.Time               `json:"submitted_at,omitempty"`
	ApprovedBy   *uuid.UUID               `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time               `json:"approved_at,omitempty"`
	ReceivedBy   *uuid.UUID               `gorm:"type:uuid" json:"received_by,omitempty"`
	ReceivedAt   *time.Time               `json:"received_at,omitempty"`
	CancelledBy  *uuid.UUID               `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelledAt  *time.Time               `json:"cancelled_at,omitempty"`
	CancelReason string                   `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
	DeletedAt    gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier            `gorm:"foreignKey:SupplierID" json:"-"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order
func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one medication line on a purchase order.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	MedicationID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"medication_id"`
	MedicationName  string          `gorm:"size:255;not null" json:"medication_name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	TotalCost       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_cost"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Medication Medication `gorm:"foreignKey:MedicationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new purchase order item
func (i *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
