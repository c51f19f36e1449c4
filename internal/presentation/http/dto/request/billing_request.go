package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillServiceRequest is one billable line item
type BillServiceRequest struct {
	ServiceName string          `json:"service_name" binding:"required,max=255"`
	Department  string          `json:"department" binding:"omitempty,max=100"`
	Quantity    int             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateBillRequest represents a bill creation request
type CreateBillRequest struct {
	PatientID uuid.UUID            `json:"patient_id" binding:"required"`
	Services  []BillServiceRequest `json:"services" binding:"required,min=1,dive"`
	Notes     string               `json:"notes"`
}

// AddServicesRequest appends line items to an existing bill
type AddServicesRequest struct {
	Services []BillServiceRequest `json:"services" binding:"required,min=1,dive"`
}

// RecordPaymentRequest represents a payment against a bill
type RecordPaymentRequest struct {
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod      string          `json:"payment_method" binding:"required,max=50"`
	PaymentDate        string          `json:"payment_date" binding:"required"`
	PaidServiceIndexes []int           `json:"paid_service_indexes"`
	Notes              string          `json:"notes"`
	FromLease          bool            `json:"from_lease"`
	LeaseDetails       string          `json:"lease_details"`
}

// VoidReceiptRequest voids or refunds a receipt
type VoidReceiptRequest struct {
	Status string `json:"status" binding:"required,oneof=voided refunded"`
	Reason string `json:"reason" binding:"required,min=3"`
}
