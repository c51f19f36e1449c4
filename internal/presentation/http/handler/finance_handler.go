package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/request"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// FinanceHandler handles expense and cash transfer HTTP requests
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// RecordExpense handles recording an operating expense
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	actor := GetActor(c)

	var req request.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			response.BadRequest(c, "Invalid expense date: expected YYYY-MM-DD")
			return
		}
		expenseDate = parsed
	}

	expense, err := h.financeService.RecordExpense(c.Request.Context(), actor, &service.RecordExpenseInput{
		AccountID:   req.AccountID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		PaidTo:      req.PaidTo,
		Reference:   req.Reference,
		ExpenseDate: expenseDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// ListExpenses handles listing expenses
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	params := &repository.ExpenseFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		AccountID:  parseUUIDQuery(c, "account_id"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.financeService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Transfer handles moving funds between ledger accounts
func (h *FinanceHandler) Transfer(c *gin.Context) {
	actor := GetActor(c)

	var req request.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	transfer, err := h.financeService.Transfer(c.Request.Context(), actor, &service.TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Reason:        req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transfer completed successfully", transfer)
}

// ListTransfers handles listing cash transfers
func (h *FinanceHandler) ListTransfers(c *gin.Context) {
	result, err := h.financeService.ListTransfers(c.Request.Context(), parsePagination(c), parseUUIDQuery(c, "account_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transfers retrieved successfully", result)
}
