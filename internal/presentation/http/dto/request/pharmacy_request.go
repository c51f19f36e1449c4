package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMedicationRequest adds a drug to the inventory
type CreateMedicationRequest struct {
	Name          string          `json:"name" binding:"required,min=2,max=255"`
	Code          string          `json:"code" binding:"required,max=100"`
	Category      *string         `json:"category"`
	Unit          string          `json:"unit" binding:"omitempty,max=50"`
	Quantity      int             `json:"quantity" binding:"min=0"`
	QuantityAlert int             `json:"quantity_alert" binding:"min=0"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	ExpiryDate    *string         `json:"expiry_date"`
	Notes         *string         `json:"notes"`
}

// UpdateMedicationRequest updates a drug's details
type UpdateMedicationRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Category      *string          `json:"category"`
	Unit          *string          `json:"unit" binding:"omitempty,max=50"`
	QuantityAlert *int             `json:"quantity_alert" binding:"omitempty,min=0"`
	BuyingPrice   *decimal.Decimal `json:"buying_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	ExpiryDate    *string          `json:"expiry_date"`
	Notes         *string          `json:"notes"`
}

// DispenseItemRequest is one medication line in a dispense
type DispenseItemRequest struct {
	MedicationID uuid.UUID `json:"medication_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
}

// DispenseRequest dispenses medications against a patient's bill
type DispenseRequest struct {
	PatientID uuid.UUID             `json:"patient_id" binding:"required"`
	Items     []DispenseItemRequest `json:"items" binding:"required,min=1,dive"`
}
