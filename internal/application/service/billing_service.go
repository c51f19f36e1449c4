package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Ledger account codes payments post into: "Cash at Hand" (code 3) is
// created lazily under the top-level "Cash" account (code 01).
const (
	cashAccountCode       = "01"
	cashAtHandAccountCode = "3"
)

// BillingService handles patient bills, payments and receipts
type BillingService struct {
	billRepo    repository.BillRepository
	serviceRepo repository.BillServiceRepository
	receiptRepo repository.ReceiptRepository
	shiftRepo   repository.ShiftRepository
	ledgerRepo  repository.LedgerRepository
	patientRepo repository.PatientRepository
	txManager   repository.TxManager
	logger      zerolog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	serviceRepo repository.BillServiceRepository,
	receiptRepo repository.ReceiptRepository,
	shiftRepo repository.ShiftRepository,
	ledgerRepo repository.LedgerRepository,
	patientRepo repository.PatientRepository,
	txManager repository.TxManager,
	logger zerolog.Logger,
) *BillingService {
	return &BillingService{
		billRepo:    billRepo,
		serviceRepo: serviceRepo,
		receiptRepo: receiptRepo,
		shiftRepo:   shiftRepo,
		ledgerRepo:  ledgerRepo,
		patientRepo: patientRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ServiceInput is one billable line item to add to a bill
type ServiceInput struct {
	ServiceName string
	Department  string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	PatientID uuid.UUID
	Services  []ServiceInput
}

// PaymentInput represents a payment against a bill
type PaymentInput struct {
	Amount             decimal.Decimal
	Method             string
	Date               time.Time
	PaidServiceIndexes []int
	Notes              string
	FromLease          bool
	LeaseDetails       string
}

// PaymentResult carries the updated bill and the receipt issued for a payment
type PaymentResult struct {
	Bill    *entity.PatientBill
	Receipt *entity.Receipt
}

func (s *BillingService) validateServices(services []ServiceInput) error {
	if len(services) == 0 {
		return apperror.NewBadRequestError("At least one service is required")
	}
	var fieldErrors []apperror.FieldError
	for i, svc := range services {
		if svc.ServiceName == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("services[%d].service_name", i),
				Message: "service name is required",
			})
		}
		if svc.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("services[%d].quantity", i),
				Message: "quantity must be positive",
			})
		}
		if svc.UnitPrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("services[%d].unit_price", i),
				Message: "unit price cannot be negative",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// nextBillNumber derives BILL-<year>-<seq> from the yearly bill count.
// The unique index on bill_number backstops concurrent generation.
func (s *BillingService) nextBillNumber(ctx context.Context, now time.Time) (string, error) {
	count, err := s.billRepo.CountCreatedInYear(ctx, now.Year())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BILL-%d-%05d", now.Year(), count+1), nil
}

func (s *BillingService) nextReceiptNumber(ctx context.Context, now time.Time) (string, error) {
	count, err := s.receiptRepo.CountCreatedInYear(ctx, now.Year())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RCT-%d-%05d", now.Year(), count+1), nil
}

// CreateBill creates a new bill for a patient with its initial line items
func (s *BillingService) CreateBill(ctx context.Context, actor entity.Actor, input *CreateBillInput) (*entity.PatientBill, error) {
	if actor.ID == uuid.Nil || actor.ClinicID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Actor identity required")
	}
	if input.PatientID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Patient is required")
	}
	if err := s.validateServices(input.Services); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	now := time.Now()
	billNumber, err := s.nextBillNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	lines := make([]entity.BillService, 0, len(input.Services))
	for i, svc := range input.Services {
		lineTotal := svc.UnitPrice.Mul(decimal.NewFromInt(int64(svc.Quantity)))
		total = total.Add(lineTotal)
		department := svc.Department
		if department == "" {
			department = "general"
		}
		lines = append(lines, entity.BillService{
			Position:    i,
			ServiceName: svc.ServiceName,
			Department:  department,
			Quantity:    svc.Quantity,
			UnitPrice:   svc.UnitPrice,
			TotalPrice:  lineTotal,
		})
	}

	bill := &entity.PatientBill{
		ClinicID:    actor.ClinicID,
		PatientID:   patient.ID,
		PatientName: patient.FullName(),
		BillNumber:  billNumber,
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		Status:      enum.BillStatusPending,
		CreatedBy:   actor.ID,
	}
	bill.Recompute()
	// A zero-total bill stays pending until services are added
	if total.IsZero() {
		bill.Status = enum.BillStatusPending
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.billRepo.Create(ctx, bill); err != nil {
			return err
		}
		for i := range lines {
			lines[i].BillID = bill.ID
		}
		return s.serviceRepo.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	return s.billRepo.GetWithServices(ctx, bill.ID)
}

// FindActiveBill returns the patient's most recent reusable bill. Settled
// (paid) bills qualify so new charges reopen them.
func (s *BillingService) FindActiveBill(ctx context.Context, patientID uuid.UUID) (*entity.PatientBill, error) {
	if patientID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Patient is required")
	}
	bill, err := s.billRepo.FindActiveForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Active bill")
	}
	return s.billRepo.GetWithServices(ctx, bill.ID)
}

// AddServicesToBill appends line items to a bill and recomputes its totals.
// Paid amount is left untouched; a settled bill flips back to partial or
// pending through the status derivation.
func (s *BillingService) AddServicesToBill(ctx context.Context, actor entity.Actor, billID uuid.UUID, services []ServiceInput) (*entity.PatientBill, error) {
	if err := s.validateServices(services); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	maxPos, err := s.serviceRepo.MaxPosition(ctx, billID)
	if err != nil {
		return nil, err
	}

	added := decimal.Zero
	lines := make([]entity.BillService, 0, len(services))
	for i, svc := range services {
		lineTotal := svc.UnitPrice.Mul(decimal.NewFromInt(int64(svc.Quantity)))
		added = added.Add(lineTotal)
		department := svc.Department
		if department == "" {
			department = "general"
		}
		lines = append(lines, entity.BillService{
			BillID:      billID,
			Position:    maxPos + 1 + i,
			ServiceName: svc.ServiceName,
			Department:  department,
			Quantity:    svc.Quantity,
			UnitPrice:   svc.UnitPrice,
			TotalPrice:  lineTotal,
		})
	}

	bill.TotalAmount = bill.TotalAmount.Add(added)
	bill.Recompute()
	// An additional charge on a settled bill reopens it
	if bill.BalanceAmount.GreaterThan(decimal.Zero) && bill.Status == enum.BillStatusPaid {
		bill.Status = enum.BillStatusPartial
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.serviceRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}
		return s.billRepo.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	return s.billRepo.GetWithServices(ctx, billID)
}

// AppendToActiveBill adds charges to the patient's reusable bill, creating
// a fresh bill when the patient has none. Visits, lab orders and pharmacy
// dispensing all bill through here.
func (s *BillingService) AppendToActiveBill(ctx context.Context, actor entity.Actor, patientID uuid.UUID, services []ServiceInput) (*entity.PatientBill, error) {
	bill, err := s.billRepo.FindActiveForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return s.CreateBill(ctx, actor, &CreateBillInput{
			PatientID: patientID,
			Services:  services,
		})
	}
	return s.AddServicesToBill(ctx, actor, bill.ID, services)
}

// RecordPayment records a payment against a bill, issuing an immutable
// receipt and posting cash payments into the ledger. The bill update,
// receipt insert and ledger adjustments run in one transaction.
func (s *BillingService) RecordPayment(ctx context.Context, actor entity.Actor, billID uuid.UUID, input *PaymentInput) (*PaymentResult, error) {
	// Payments are only accepted inside an open cashier shift
	shift, err := s.shiftRepo.GetOpenForCashier(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}

	var fieldErrors []apperror.FieldError
	if !input.Amount.GreaterThan(decimal.Zero) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "payment amount must be positive"})
	}
	if input.Method == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "payment method is required"})
	}
	if input.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_date", Message: "payment date is required"})
	}
	if input.FromLease && input.LeaseDetails == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "lease_details", Message: "lease details are required for lease payments"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	bill, err := s.billRepo.GetWithServices(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	if input.Amount.GreaterThan(bill.BalanceAmount) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf(
			"Payment exceeds outstanding balance: balance is %s, requested %s",
			bill.BalanceAmount.StringFixed(2), input.Amount.StringFixed(2)))
	}

	newBalance := bill.BalanceAmount.Sub(input.Amount)
	newStatus := enum.BillStatusPartial
	if newBalance.LessThanOrEqual(decimal.Zero) {
		newStatus = enum.BillStatusPaid
	}

	now := time.Now()
	receiptNumber, err := s.nextReceiptNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	// Snapshot referenced lines onto the receipt so reprints stay stable
	linesByPos := make(map[int]entity.BillService, len(bill.Services))
	for _, line := range bill.Services {
		linesByPos[line.Position] = line
	}
	var snapshot entity.ReceiptLines
	var validPositions []int
	for _, pos := range input.PaidServiceIndexes {
		line, ok := linesByPos[pos]
		if !ok {
			// Unknown positions are logged and skipped, never fatal
			s.logger.Warn().
				Str("bill_id", billID.String()).
				Int("position", pos).
				Msg("payment references unknown bill line, skipping")
			continue
		}
		validPositions = append(validPositions, pos)
		snapshot = append(snapshot, entity.ReceiptLine{
			Position:    line.Position,
			ServiceName: line.ServiceName,
			Department:  line.Department,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}

	receipt := &entity.Receipt{
		ClinicID:       bill.ClinicID,
		ReceiptNumber:  receiptNumber,
		BillID:         bill.ID,
		BillNumber:     bill.BillNumber,
		PatientID:      bill.PatientID,
		PatientName:    bill.PatientName,
		PaymentAmount:  input.Amount,
		PaymentMethod:  input.Method,
		PaymentDate:    input.Date,
		PaidServicePos: entity.IntList(validPositions),
		ServiceDetails: snapshot,
		Notes:          input.Notes,
		FromLease:      input.FromLease,
		LeaseDetails:   input.LeaseDetails,
		CashierID:      actor.ID,
		CashierName:    actor.Name,
		Status:         enum.ReceiptStatusActive,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		applied, err := s.billRepo.ApplyPayment(ctx, bill.ID, input.Amount, newStatus)
		if err != nil {
			return err
		}
		if !applied {
			// Concurrent payment consumed the balance first
			return apperror.NewConflictError("Bill balance changed, payment rejected")
		}

		// Best-effort: marking lines paid must not fail the payment
		if err := s.serviceRepo.MarkPaidByPositions(ctx, bill.ID, validPositions, now); err != nil {
			s.logger.Warn().Err(err).
				Str("bill_id", bill.ID.String()).
				Msg("failed to mark bill lines paid, continuing")
		}

		if err := s.receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}

		if input.Method == "cash" {
			if err := s.postCashToLedger(ctx, actor, input.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.billRepo.GetWithServices(ctx, bill.ID)
	if err != nil {
		return nil, err
	}

	return &PaymentResult{Bill: updated, Receipt: receipt}, nil
}

// postCashToLedger credits "Cash at Hand" and its parent "Cash" account,
// creating both lazily on first use.
func (s *BillingService) postCashToLedger(ctx context.Context, actor entity.Actor, amount decimal.Decimal) error {
	cash, err := s.ledgerRepo.GetByCode(ctx, cashAccountCode)
	if err != nil {
		return err
	}
	if cash == nil {
		cash = &entity.LedgerAccount{
			ClinicID:    actor.ClinicID,
			AccountCode: cashAccountCode,
			AccountName: "Cash",
			AccountType: "asset",
			IsActive:    true,
			CreatedBy:   actor.ID,
		}
		if err := s.ledgerRepo.Create(ctx, cash); err != nil {
			return err
		}
	}

	cashAtHand, err := s.ledgerRepo.GetByCode(ctx, cashAtHandAccountCode)
	if err != nil {
		return err
	}
	if cashAtHand == nil {
		cashAtHand = &entity.LedgerAccount{
			ClinicID:    actor.ClinicID,
			AccountCode: cashAtHandAccountCode,
			AccountName: "Cash at Hand",
			AccountType: "asset",
			ParentID:    &cash.ID,
			IsActive:    true,
			CreatedBy:   actor.ID,
		}
		if err := s.ledgerRepo.Create(ctx, cashAtHand); err != nil {
			return err
		}
	}

	if err := s.ledgerRepo.AdjustBalance(ctx, cashAtHand.ID, amount); err != nil {
		return err
	}
	return s.ledgerRepo.AdjustBalance(ctx, cash.ID, amount)
}

// GetBill retrieves a bill with its line items
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.PatientBill, error) {
	bill, err := s.billRepo.GetWithServices(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with filtering
func (s *BillingService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.PatientBill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// GetReceipt retrieves a receipt by ID
func (s *BillingService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts lists receipts with filtering
func (s *BillingService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// VoidOrRefundReceipt flips a receipt to voided or refunded. Only the
// status, reason and audit fields change; the amount is immutable.
func (s *BillingService) VoidOrRefundReceipt(ctx context.Context, actor entity.Actor, receiptID uuid.UUID, newStatus enum.ReceiptStatus, reason string) (*entity.Receipt, error) {
	if newStatus != enum.ReceiptStatusVoided && newStatus != enum.ReceiptStatusRefunded {
		return nil, apperror.NewBadRequestError("Receipt status must be voided or refunded")
	}

	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.Status != enum.ReceiptStatusActive {
		return nil, apperror.NewConflictError("Only active receipts can be voided or refunded")
	}

	now := time.Now()
	receipt.Status = newStatus
	receipt.VoidedBy = &actor.ID
	receipt.VoidedAt = &now
	receipt.VoidReason = reason

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}
