package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordExpenseRequest records an operating expense against an account
type RecordExpenseRequest struct {
	AccountID   uuid.UUID       `json:"account_id" binding:"required"`
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaidTo      string          `json:"paid_to"`
	Reference   string          `json:"reference"`
	ExpenseDate string          `json:"expense_date"`
}

// TransferRequest moves funds between two ledger accounts
type TransferRequest struct {
	FromAccountID uuid.UUID       `json:"from_account_id" binding:"required"`
	ToAccountID   uuid.UUID       `json:"to_account_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Reason        string          `json:"reason"`
}
