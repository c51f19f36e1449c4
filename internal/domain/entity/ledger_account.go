package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerAccount is a node in the two-level chart of accounts. Top-level
// accounts have a nil ParentID; sub-accounts point at exactly one parent.
// AccountCode is looked up but deliberately carries no uniqueness
// constraint; lookups take the first match by creation order.
type LedgerAccount struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"clinic_id"`
	AccountCode string          `gorm:"size:50;index" json:"account_code"`
	AccountName string          `gorm:"size:255;not null" json:"account_name"`
	AccountType string          `gorm:"size:50;not null;default:'asset'" json:"account_type"`
	ParentID    *uuid.UUID      `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Balance     decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"balance"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Parent   *LedgerAccount  `gorm:"foreignKey:ParentID" json:"-"`
	Children []LedgerAccount `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *LedgerAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerAccount model
func (LedgerAccount) TableName() string {
	return "ledger_accounts"
}

// IsTopLevel reports whether the account sits at the root of the chart.
func (a *LedgerAccount) IsTopLevel() bool {
	return a.ParentID == nil
}
