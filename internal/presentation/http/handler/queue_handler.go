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

// QueueHandler handles patient queue HTTP requests
type QueueHandler struct {
	queueService *service.QueueService
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queueService *service.QueueService) *QueueHandler {
	return &QueueHandler{queueService: queueService}
}

// Join handles adding a patient to today's queue
func (h *QueueHandler) Join(c *gin.Context) {
	actor := GetActor(c)

	var req request.JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.queueService.JoinQueue(c.Request.Context(), actor, req.PatientID, req.Department)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Patient added to queue", entry)
}

// List handles listing queue entries
func (h *QueueHandler) List(c *gin.Context) {
	params := &repository.QueueFilterParams{
		Pagination: parsePagination(c),
		Department: c.Query("department"),
		Date:       parseDateQuery(c, "date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseQueueStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid queue status")
			return
		}
		params.Status = &status
	}

	result, err := h.queueService.ListQueue(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Queue retrieved successfully", result)
}

// Call handles calling a waiting patient in for consultation
func (h *QueueHandler) Call(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid queue entry ID")
		return
	}

	entry, err := h.queueService.CallNext(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient called", entry)
}

// Complete handles marking a queue entry as completed
func (h *QueueHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid queue entry ID")
		return
	}

	if err := h.queueService.CompleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Queue entry completed", nil)
}

// Cancel handles removing a patient from the queue
func (h *QueueHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid queue entry ID")
		return
	}

	if err := h.queueService.CancelEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Queue entry cancelled", nil)
}
