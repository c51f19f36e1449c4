package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/request"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// VisitHandler handles clinical visit HTTP requests
type VisitHandler struct {
	visitService *service.VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visitService *service.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// Start handles opening a visit for a patient
func (h *VisitHandler) Start(c *gin.Context) {
	actor := GetActor(c)

	var req request.StartVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.StartVisit(c.Request.Context(), actor, &service.StartVisitInput{
		PatientID: req.PatientID,
		QueueID:   req.QueueID,
		Complaint: req.Complaint,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Visit started successfully", visit)
}

// List handles listing visits
func (h *VisitHandler) List(c *gin.Context) {
	params := &repository.VisitFilterParams{
		Pagination: parsePagination(c),
		DoctorID:   parseUUIDQuery(c, "doctor_id"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseVisitStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid visit status")
			return
		}
		params.Status = &status
	}

	result, err := h.visitService.ListVisits(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Visits retrieved successfully", result)
}

// Get handles getting a single visit
func (h *VisitHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	visit, err := h.visitService.GetVisit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Visit retrieved successfully", visit)
}

// Update handles updating an open visit's clinical notes
func (h *VisitHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	var req request.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.UpdateVisit(c.Request.Context(), id, &service.UpdateVisitInput{
		Complaint: req.Complaint,
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Visit updated successfully", visit)
}

// Close handles closing a visit, billing any consultation services
func (h *VisitHandler) Close(c *gin.Context) {
	actor := GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	var req request.CloseVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.CloseVisit(c.Request.Context(), actor, id, toServiceInputs(req.Services))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Visit closed successfully", visit)
}

// PatientVisits handles listing a patient's visit history
func (h *VisitHandler) PatientVisits(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	result, err := h.visitService.GetPatientVisits(c.Request.Context(), patientID, parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Visits retrieved successfully", result)
}

// toServiceInputs converts bill service DTOs to service layer inputs
func toServiceInputs(items []request.BillServiceRequest) []service.ServiceInput {
	inputs := make([]service.ServiceInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.ServiceInput{
			ServiceName: item.ServiceName,
			Department:  item.Department,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return inputs
}
