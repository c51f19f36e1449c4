package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/request"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// BillingHandler handles bill, payment and receipt HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreateBill handles creating a bill for a patient
func (h *BillingHandler) CreateBill(c *gin.Context) {
	actor := GetActor(c)

	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), actor, &service.CreateBillInput{
		PatientID: req.PatientID,
		Services:  toServiceInputs(req.Services),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// ListBills handles listing bills
func (h *BillingHandler) ListBills(c *gin.Context) {
	params := &repository.BillFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		PatientID:  parseUUIDQuery(c, "patient_id"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseBillStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid bill status")
			return
		}
		params.Status = &status
	}

	result, err := h.billingService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// GetBill handles getting a single bill with its line items
func (h *BillingHandler) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// ActiveBill handles resolving a patient's payable bill
func (h *BillingHandler) ActiveBill(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	bill, err := h.billingService.FindActiveBill(c.Request.Context(), patientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// AddServices handles appending line items to an existing bill
func (h *BillingHandler) AddServices(c *gin.Context) {
	actor := GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.AddServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.AddServicesToBill(c.Request.Context(), actor, id, toServiceInputs(req.Services))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services added successfully", bill)
}

// RecordPayment handles recording a payment against a bill
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	actor := GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		if paymentDate, err = time.Parse(time.RFC3339, req.PaymentDate); err != nil {
			response.BadRequest(c, "Invalid payment date: expected YYYY-MM-DD")
			return
		}
	}

	result, err := h.billingService.RecordPayment(c.Request.Context(), actor, id, &service.PaymentInput{
		Amount:             req.Amount,
		Method:             req.PaymentMethod,
		Date:               paymentDate,
		PaidServiceIndexes: req.PaidServiceIndexes,
		Notes:              req.Notes,
		FromLease:          req.FromLease,
		LeaseDetails:       req.LeaseDetails,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", gin.H{
		"bill":    result.Bill,
		"receipt": result.Receipt,
	})
}

// ListReceipts handles listing receipts
func (h *BillingHandler) ListReceipts(c *gin.Context) {
	params := &repository.ReceiptFilterParams{
		Pagination:    parsePagination(c),
		Search:        c.Query("search"),
		PaymentMethod: c.Query("payment_method"),
		CashierID:     parseUUIDQuery(c, "cashier_id"),
		PatientID:     parseUUIDQuery(c, "patient_id"),
		StartDate:     parseDateQuery(c, "start_date"),
		EndDate:       parseDateQuery(c, "end_date"),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseReceiptStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid receipt status")
			return
		}
		params.Status = &status
	}

	result, err := h.billingService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// GetReceipt handles getting a single receipt
func (h *BillingHandler) GetReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.billingService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// VoidReceipt handles voiding or refunding a receipt
func (h *BillingHandler) VoidReceipt(c *gin.Context) {
	actor := GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.VoidReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := enum.ParseReceiptStatus(req.Status)
	if !ok || status == enum.ReceiptStatusActive {
		response.BadRequest(c, "Status must be voided or refunded")
		return
	}

	receipt, err := h.billingService.VoidOrRefundReceipt(c.Request.Context(), actor, id, status, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", receipt)
}
