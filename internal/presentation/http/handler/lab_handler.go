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

// LabHandler handles lab order HTTP requests
type LabHandler struct {
	labService *service.LabService
}

// NewLabHandler creates a new lab handler
func NewLabHandler(labService *service.LabService) *LabHandler {
	return &LabHandler{labService: labService}
}

// Create handles ordering lab tests for a patient
func (h *LabHandler) Create(c *gin.Context) {
	actor := GetActor(c)

	var req request.CreateLabOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tests := make([]service.LabTestInput, 0, len(req.Tests))
	for _, test := range req.Tests {
		tests = append(tests, service.LabTestInput{
			TestName: test.TestName,
			Price:    test.Price,
		})
	}

	order, err := h.labService.CreateLabOrder(c.Request.Context(), actor, &service.CreateLabOrderInput{
		PatientID: req.PatientID,
		VisitID:   req.VisitID,
		Tests:     tests,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lab order created successfully", order)
}

// List handles listing lab orders
func (h *LabHandler) List(c *gin.Context) {
	params := &repository.LabOrderFilterParams{
		Pagination: parsePagination(c),
		PatientID:  parseUUIDQuery(c, "patient_id"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseLabOrderStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid lab order status")
			return
		}
		params.Status = &status
	}

	result, err := h.labService.ListLabOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Lab orders retrieved successfully", result)
}

// Get handles getting a single lab order with its tests
func (h *LabHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab order ID")
		return
	}

	order, err := h.labService.GetLabOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lab order retrieved successfully", order)
}

// RecordResult handles recording a test result
func (h *LabHandler) RecordResult(c *gin.Context) {
	actor := GetActor(c)

	testID, err := uuid.Parse(c.Param("testId"))
	if err != nil {
		response.BadRequest(c, "Invalid lab test ID")
		return
	}

	var req request.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	test, err := h.labService.RecordResult(c.Request.Context(), actor, testID, req.Result)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Result recorded successfully", test)
}

// Cancel handles cancelling a lab order
func (h *LabHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab order ID")
		return
	}

	if err := h.labService.CancelLabOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lab order cancelled successfully", nil)
}
