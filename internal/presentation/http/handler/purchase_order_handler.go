package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/request"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// PurchaseOrderHandler handles purchase order HTTP requests
type PurchaseOrderHandler struct {
	purchaseOrderService *service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(purchaseOrderService *service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseOrderService: purchaseOrderService}
}

// Create handles drafting a purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	actor := GetActor(c)

	var req request.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PurchaseItemInput{
			MedicationID: item.MedicationID,
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost,
		})
	}

	order, err := h.purchaseOrderService.CreateDraft(c.Request.Context(), actor, &service.CreatePurchaseOrderInput{
		SupplierID: req.SupplierID,
		Items:      items,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", order)
}

// List handles listing purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	params := &repository.PurchaseOrderFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SupplierID: parseUUIDQuery(c, "supplier_id"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParsePurchaseOrderStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid purchase order status")
			return
		}
		params.Status = &status
	}

	result, err := h.purchaseOrderService.ListPurchaseOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Get handles getting a single purchase order with its lines
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchaseOrderService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", order)
}

// Submit handles submitting a draft purchase order for approval
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	h.transition(c, h.purchaseOrderService.Submit, "Purchase order submitted successfully")
}

// Approve handles approving a submitted purchase order
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.purchaseOrderService.Approve, "Purchase order approved successfully")
}

// Receive handles receiving an approved purchase order into stock
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	h.transition(c, h.purchaseOrderService.Receive, "Purchase order received successfully")
}

// Cancel handles cancelling a purchase order
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	actor := GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.CancelPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.purchaseOrderService.Cancel(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order cancelled successfully", order)
}

type transitionFunc func(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.PurchaseOrder, error)

func (h *PurchaseOrderHandler) transition(c *gin.Context, fn transitionFunc, message string) {
	actor := GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, order)
}
