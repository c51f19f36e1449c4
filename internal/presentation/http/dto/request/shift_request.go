package request

import "github.com/shopspring/decimal"

// StartShiftRequest opens a cashier shift
type StartShiftRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Notes          string          `json:"notes"`
}

// CloseShiftRequest closes a cashier shift with the counted drawer amount
type CloseShiftRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance" binding:"required"`
	Notes          string          `json:"notes"`
}
