package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest is one line on a purchase order
type PurchaseItemRequest struct {
	MedicationID uuid.UUID       `json:"medication_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreatePurchaseOrderRequest drafts a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID             `json:"supplier_id" binding:"required"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes      string                `json:"notes"`
}

// CancelPurchaseOrderRequest cancels a purchase order with a reason
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}
