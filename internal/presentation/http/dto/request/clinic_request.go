package request

// ClinicSettingsRequest carries per-clinic settings overrides
type ClinicSettingsRequest struct {
	Currency      string `json:"currency" binding:"omitempty,max=10"`
	Timezone      string `json:"timezone" binding:"omitempty,max=100"`
	ReceiptHeader string `json:"receipt_header" binding:"omitempty,max=500"`
	ReceiptFooter string `json:"receipt_footer" binding:"omitempty,max=500"`
	BillPrefix    string `json:"bill_prefix" binding:"omitempty,max=20"`
	ReceiptPrefix string `json:"receipt_prefix" binding:"omitempty,max=20"`
}

// CreateClinicRequest registers a new facility
type CreateClinicRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Code    string  `json:"code" binding:"required,min=2,max=50"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

// UpdateClinicRequest updates a facility's details and settings
type UpdateClinicRequest struct {
	Name     *string                `json:"name" binding:"omitempty,min=2,max=255"`
	Address  *string                `json:"address"`
	Phone    *string                `json:"phone" binding:"omitempty,max=50"`
	Settings *ClinicSettingsRequest `json:"settings"`
}
