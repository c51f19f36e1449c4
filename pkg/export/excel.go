package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReceiptRow is one row of the receipts report workbook.
type ReceiptRow struct {
	ReceiptNumber string
	BillNumber    string
	PatientName   string
	CashierName   string
	PaymentMethod string
	Amount        string
	Status        string
	PaymentDate   time.Time
}

// ReceiptsWorkbook renders a receipts report as an .xlsx workbook and
// returns the serialized file.
func ReceiptsWorkbook(title string, rows []ReceiptRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Receipts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export: failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})

	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", "H1")

	headers := []string{
		"Receipt No", "Bill No", "Patient", "Cashier",
		"Method", "Amount", "Status", "Date",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%s2", string(rune('A'+i)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, r := range rows {
		row := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ReceiptNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.BillNumber)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.PatientName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.CashierName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.PaymentMethod)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.PaymentDate.Format("2006-01-02 15:04"))
	}

	_ = f.SetColWidth(sheet, "A", "H", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
