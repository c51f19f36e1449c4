package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/request"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// ClinicHandler handles clinic management HTTP requests
type ClinicHandler struct {
	clinicService *service.ClinicService
}

// NewClinicHandler creates a new clinic handler
func NewClinicHandler(clinicService *service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicService: clinicService}
}

// Create handles registering a new facility
func (h *ClinicHandler) Create(c *gin.Context) {
	var req request.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	clinic, err := h.clinicService.CreateClinic(c.Request.Context(), &service.CreateClinicInput{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Clinic created successfully", clinic)
}

// List handles listing clinics
func (h *ClinicHandler) List(c *gin.Context) {
	result, err := h.clinicService.ListClinics(c.Request.Context(), parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clinics retrieved successfully", result)
}

// Get handles getting a single clinic
func (h *ClinicHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid clinic ID")
		return
	}

	clinic, err := h.clinicService.GetClinic(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinic retrieved successfully", clinic)
}

// Update handles updating a clinic's details and settings
func (h *ClinicHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid clinic ID")
		return
	}

	var req request.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateClinicInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if req.Settings != nil {
		input.Settings = &entity.ClinicSettings{
			Currency:      req.Settings.Currency,
			Timezone:      req.Settings.Timezone,
			ReceiptHeader: req.Settings.ReceiptHeader,
			ReceiptFooter: req.Settings.ReceiptFooter,
			BillPrefix:    req.Settings.BillPrefix,
			ReceiptPrefix: req.Settings.ReceiptPrefix,
		}
	}

	clinic, err := h.clinicService.UpdateClinic(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinic updated successfully", clinic)
}

// Delete handles deleting a clinic
func (h *ClinicHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid clinic ID")
		return
	}

	if err := h.clinicService.DeleteClinic(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
