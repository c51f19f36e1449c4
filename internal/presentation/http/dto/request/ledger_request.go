package request

import "github.com/google/uuid"

// CreateAccountRequest creates a ledger account
type CreateAccountRequest struct {
	AccountName string     `json:"account_name" binding:"required,min=2,max=255"`
	AccountCode string     `json:"account_code" binding:"required,max=50"`
	AccountType string     `json:"account_type" binding:"required,max=50"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Description string     `json:"description"`
}

// UpdateAccountRequest updates ledger account metadata (never the balance)
type UpdateAccountRequest struct {
	AccountName *string `json:"account_name" binding:"omitempty,min=2,max=255"`
	AccountCode *string `json:"account_code" binding:"omitempty,max=50"`
	AccountType *string `json:"account_type" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
