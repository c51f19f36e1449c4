package service

import (
	"context"
	"fmt"
	"time"

	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/export"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// ExportService renders reporting data as downloadable workbooks
type ExportService struct {
	receiptRepo repository.ReceiptRepository
}

// NewExportService creates a new export service
func NewExportService(receiptRepo repository.ReceiptRepository) *ExportService {
	return &ExportService{receiptRepo: receiptRepo}
}

// maxExportRows caps a single workbook to keep memory bounded
const maxExportRows = 10000

// ExportReceipts renders receipts in a date window as an .xlsx workbook
func (s *ExportService) ExportReceipts(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}

	params := &repository.ReceiptFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: maxExportRows},
		StartDate:  &from,
		EndDate:    &to,
		SortBy:     "payment_date",
		SortOrder:  "asc",
	}

	receipts, _, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, "", err
	}

	rows := make([]export.ReceiptRow, 0, len(receipts))
	for _, r := range receipts {
		rows = append(rows, export.ReceiptRow{
			ReceiptNumber: r.ReceiptNumber,
			BillNumber:    r.BillNumber,
			PatientName:   r.PatientName,
			CashierName:   r.CashierName,
			PaymentMethod: r.PaymentMethod,
			Amount:        r.PaymentAmount.StringFixed(2),
			Status:        r.Status.String(),
			PaymentDate:   r.PaymentDate,
		})
	}

	title := fmt.Sprintf("Receipts %s - %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	data, err := export.ReceiptsWorkbook(title, rows)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("receipts_%s.xlsx", time.Now().Format("20060102_150405"))
	return data, filename, nil
}
