package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashTransfer moves money between two ledger accounts. The debit and
// credit are applied atomically in one transaction.
type CashTransfer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"clinic_id"`
	FromAccountID uuid.UUID       `gorm:"type:uuid;not null;index" json:"from_account_id"`
	ToAccountID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"to_account_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Reason        string          `gorm:"type:text" json:"reason,omitempty"`
	TransferDate  time.Time       `gorm:"not null;index" json:"transfer_date"`
	TransferredBy uuid.UUID       `gorm:"type:uuid;column:transferred_by" json:"transferred_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	FromAccount LedgerAccount `gorm:"foreignKey:FromAccountID" json:"-"`
	ToAccount   LedgerAccount `gorm:"foreignKey:ToAccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transfer
func (t *CashTransfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashTransfer model
func (CashTransfer) TableName() string {
	return "cash_transfers"
}
