package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
)

// ReportHandler handles analytics and export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// Dashboard handles the dashboard counters and trend
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// ReceiptStats handles receipt statistics for a period
func (h *ReportHandler) ReceiptStats(c *gin.Context) {
	stats, err := h.reportService.GetReceiptStats(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt stats retrieved successfully", stats)
}

// FinancialSummary handles the collections versus expenses summary
func (h *ReportHandler) FinancialSummary(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, -1, 0)
	if t := parseDateQuery(c, "from"); t != nil {
		from = *t
	}
	if t := parseDateQuery(c, "to"); t != nil {
		to = *t
	}

	summary, err := h.reportService.GetFinancialSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial summary retrieved successfully", summary)
}

// Demographics handles patient gender and age band breakdowns
func (h *ReportHandler) Demographics(c *gin.Context) {
	demographics, err := h.reportService.GetDemographics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Demographics retrieved successfully", demographics)
}

// TopDiagnoses handles the most frequent visit diagnoses
func (h *ReportHandler) TopDiagnoses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	points, err := h.reportService.GetTopDiagnoses(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top diagnoses retrieved successfully", points)
}

// TopMedications handles the most dispensed medications
func (h *ReportHandler) TopMedications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	points, err := h.reportService.GetTopMedications(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top medications retrieved successfully", points)
}

// DailyCollections handles the daily collections trend
func (h *ReportHandler) DailyCollections(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	points, err := h.reportService.GetDailyCollections(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily collections retrieved successfully", points)
}

// ExportReceipts handles downloading receipts as an Excel workbook
func (h *ReportHandler) ExportReceipts(c *gin.Context) {
	var from, to time.Time
	if t := parseDateQuery(c, "from"); t != nil {
		from = *t
	}
	if t := parseDateQuery(c, "to"); t != nil {
		to = *t
	}

	data, filename, err := h.exportService.ExportReceipts(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
