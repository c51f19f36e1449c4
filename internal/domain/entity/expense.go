package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense records money paid out of a ledger account. Recording one
// decrements the source account balance in the same transaction.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"clinic_id"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Category    string          `gorm:"size:100;not null" json:"category"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidTo      string          `gorm:"size:255" json:"paid_to,omitempty"`
	Reference   string          `gorm:"size:100" json:"reference,omitempty"`
	ExpenseDate time.Time       `gorm:"not null;index" json:"expense_date"`
	RecordedBy  uuid.UUID       `gorm:"type:uuid;column:recorded_by" json:"recorded_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Account LedgerAccount `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
