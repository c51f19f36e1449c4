package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/request"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// PharmacyHandler handles medication inventory and dispensing HTTP requests
type PharmacyHandler struct {
	pharmacyService *service.PharmacyService
}

// NewPharmacyHandler creates a new pharmacy handler
func NewPharmacyHandler(pharmacyService *service.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacyService: pharmacyService}
}

// CreateMedication handles adding a drug to the inventory
func (h *PharmacyHandler) CreateMedication(c *gin.Context) {
	actor := GetActor(c)

	var req request.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expiry, ok := parseOptionalDate(req.ExpiryDate)
	if !ok {
		response.BadRequest(c, "Invalid expiry date: expected YYYY-MM-DD")
		return
	}

	medication := &entity.Medication{
		Name:          req.Name,
		Code:          req.Code,
		Category:      req.Category,
		Unit:          req.Unit,
		Quantity:      req.Quantity,
		QuantityAlert: req.QuantityAlert,
		BuyingPrice:   req.BuyingPrice,
		SellingPrice:  req.SellingPrice,
		ExpiryDate:    expiry,
		Notes:         req.Notes,
	}

	created, err := h.pharmacyService.CreateMedication(c.Request.Context(), actor, medication)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Medication created successfully", created)
}

// ListMedications handles listing the medication inventory
func (h *PharmacyHandler) ListMedications(c *gin.Context) {
	params := &repository.MedicationFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.pharmacyService.ListMedications(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Medications retrieved successfully", result)
}

// GetMedication handles getting a single medication
func (h *PharmacyHandler) GetMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	medication, err := h.pharmacyService.GetMedication(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medication retrieved successfully", medication)
}

// UpdateMedication handles updating a medication's details
func (h *PharmacyHandler) UpdateMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	var req request.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	medication, err := h.pharmacyService.GetMedication(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Name != nil {
		medication.Name = *req.Name
	}
	if req.Category != nil {
		medication.Category = req.Category
	}
	if req.Unit != nil {
		medication.Unit = *req.Unit
	}
	if req.QuantityAlert != nil {
		medication.QuantityAlert = *req.QuantityAlert
	}
	if req.BuyingPrice != nil {
		medication.BuyingPrice = *req.BuyingPrice
	}
	if req.SellingPrice != nil {
		medication.SellingPrice = *req.SellingPrice
	}
	if req.ExpiryDate != nil {
		expiry, ok := parseOptionalDate(req.ExpiryDate)
		if !ok {
			response.BadRequest(c, "Invalid expiry date: expected YYYY-MM-DD")
			return
		}
		medication.ExpiryDate = expiry
	}
	if req.Notes != nil {
		medication.Notes = req.Notes
	}

	updated, err := h.pharmacyService.UpdateMedication(c.Request.Context(), medication)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medication updated successfully", updated)
}

// DeleteMedication handles removing a medication from the inventory
func (h *PharmacyHandler) DeleteMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	if err := h.pharmacyService.DeleteMedication(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// LowStock handles listing medications at or below their alert level
func (h *PharmacyHandler) LowStock(c *gin.Context) {
	medications, err := h.pharmacyService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock medications retrieved successfully", medications)
}

// Dispense handles dispensing medications against a patient's bill
func (h *PharmacyHandler) Dispense(c *gin.Context) {
	actor := GetActor(c)

	var req request.DispenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.DispenseItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.DispenseItemInput{
			MedicationID: item.MedicationID,
			Quantity:     item.Quantity,
		})
	}

	bill, err := h.pharmacyService.Dispense(c.Request.Context(), actor, req.PatientID, items)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medications dispensed successfully", bill)
}

// parseOptionalDate parses an optional YYYY-MM-DD date string
func parseOptionalDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, false
	}
	return &t, true
}
