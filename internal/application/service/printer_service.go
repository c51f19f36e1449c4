package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/printer"
	"github.com/rs/zerolog"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	receiptRepo repository.ReceiptRepository
	shiftRepo   repository.ShiftRepository
	clinicRepo  repository.ClinicRepository
	printerType string
	logger      zerolog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receiptRepo repository.ReceiptRepository,
	shiftRepo repository.ShiftRepository,
	clinicRepo repository.ClinicRepository,
	printerType string,
	logger zerolog.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receiptRepo: receiptRepo,
		shiftRepo:   shiftRepo,
		clinicRepo:  clinicRepo,
		printerType: printerType,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(32)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("PRINTER TEST").
		SetBold(false).
		Text("If you can read this,").
		Text("the printer is working.").
		FeedLines(3).
		Cut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("test print failed: %w", err)
	}
	return nil
}

// PrintReceipt fetches a payment receipt and prints it. The formatted
// receipt snapshot is returned so the handler can serve it as JSON even
// when no printer hardware is configured.
func (s *PrinterService) PrintReceipt(ctx context.Context, receiptID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	clinic, err := s.clinicRepo.GetByID(ctx, receipt.ClinicID)
	if err != nil {
		return nil, err
	}

	data := FormatPaymentReceipt(receipt, clinic)
	if err := s.printer.Print(data); err != nil {
		s.logger.Warn().Err(err).Str("receipt_number", receipt.ReceiptNumber).Msg("receipt print failed")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintShiftSummary prints a closed shift's reconciliation slip.
func (s *PrinterService) PrintShiftSummary(ctx context.Context, shiftID uuid.UUID) (*entity.CashierShift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}

	data := FormatShiftSummary(shift)
	if err := s.printer.Print(data); err != nil {
		s.logger.Warn().Err(err).Str("shift_id", shift.ID.String()).Msg("shift summary print failed")
		return shift, fmt.Errorf("failed to print shift summary: %w", err)
	}

	return shift, nil
}

// FormatPaymentReceipt converts a payment receipt into ESC/POS bytes.
func FormatPaymentReceipt(r *entity.Receipt, clinic *entity.Clinic) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	name := "Receipt"
	if clinic != nil {
		name = clinic.Name
		if clinic.Settings.ReceiptHeader != "" {
			name = clinic.Settings.ReceiptHeader
		}
	}
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(name).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if clinic != nil {
		if clinic.Address != nil && *clinic.Address != "" {
			doc.Text(*clinic.Address)
		}
		if clinic.Phone != nil && *clinic.Phone != "" {
			doc.Text(*clinic.Phone)
		}
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.ReceiptNumber).
		KeyValue("Bill:", r.BillNumber).
		KeyValue("Date:", r.PaymentDate.Format("2006-01-02 15:04")).
		KeyValue("Patient:", r.PatientName).
		KeyValue("Cashier:", r.CashierName).
		KeyValue("Method:", r.PaymentMethod)

	doc.Separator('-')

	// Paid line items snapshotted at payment time
	for _, line := range r.ServiceDetails {
		doc.ItemLine(line.Quantity, line.ServiceName, line.TotalPrice.StringFixed(2))
		if line.Quantity > 1 {
			doc.TextF("  @ %s each", line.UnitPrice.StringFixed(2))
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("PAID:", r.PaymentAmount.StringFixed(2)).
		SetBold(false)

	if r.Status != 0 {
		doc.SetBold(true).
			KeyValue("STATUS:", r.Status.String()).
			SetBold(false)
	}

	doc.Separator('-')

	footer := "Thank you. Get well soon!"
	if clinic != nil && clinic.Settings.ReceiptFooter != "" {
		footer = clinic.Settings.ReceiptFooter
	}
	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text(footer).
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}

// FormatShiftSummary converts a cashier shift into ESC/POS bytes.
func FormatShiftSummary(shift *entity.CashierShift) []byte {
	doc := printer.NewDocument(32)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("SHIFT SUMMARY").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Cashier:", shift.CashierName).
		KeyValue("Opened:", shift.OpenedAt.Format("2006-01-02 15:04"))
	if shift.ClosedAt != nil {
		doc.KeyValue("Closed:", shift.ClosedAt.Format("2006-01-02 15:04"))
	}

	doc.Separator('-')

	doc.KeyValue("Opening:", shift.OpeningBalance.StringFixed(2)).
		KeyValue("Collected:", shift.TotalCollected.StringFixed(2)).
		KeyValue("Receipts:", fmt.Sprintf("%d", shift.ReceiptCount)).
		KeyValue("Expected:", shift.ExpectedCash.StringFixed(2))

	if shift.ClosedAt != nil {
		doc.KeyValue("Counted:", shift.ClosingBalance.StringFixed(2)).
			SetBold(true).
			KeyValue("Variance:", shift.Variance().StringFixed(2)).
			SetBold(false)
	}

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
