package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/apperror"
)

type billingFixture struct {
	svc         *BillingService
	billRepo    *fakeBillRepo
	serviceRepo *fakeBillServiceRepo
	receiptRepo *fakeReceiptRepo
	shiftRepo   *fakeShiftRepo
	ledgerRepo  *fakeLedgerRepo
	patientRepo *fakePatientRepo
	actor       entity.Actor
	patient     *entity.Patient
}

func setupBillingTest(t *testing.T) *billingFixture {
	t.Helper()

	serviceRepo := newFakeBillServiceRepo()
	billRepo := newFakeBillRepo(serviceRepo)
	receiptRepo := newFakeReceiptRepo()
	shiftRepo := newFakeShiftRepo()
	ledgerRepo := newFakeLedgerRepo()
	patientRepo := newFakePatientRepo()

	svc := NewBillingService(billRepo, serviceRepo, receiptRepo, shiftRepo, ledgerRepo, patientRepo, fakeTxManager{}, zerolog.Nop())

	actor := entity.Actor{
		ID:       uuid.New(),
		Name:     "Jane Wanjiku",
		ClinicID: uuid.New(),
		Roles:    []string{"cashier"},
	}
	patient := &entity.Patient{
		ID:        uuid.New(),
		ClinicID:  actor.ClinicID,
		MRN:       "PT-2026-00001",
		FirstName: "John",
		LastName:  "Otieno",
		Gender:    "male",
	}
	require.NoError(t, patientRepo.Create(context.Background(), patient))

	return &billingFixture{
		svc:         svc,
		billRepo:    billRepo,
		serviceRepo: serviceRepo,
		receiptRepo: receiptRepo,
		shiftRepo:   shiftRepo,
		ledgerRepo:  ledgerRepo,
		patientRepo: patientRepo,
		actor:       actor,
		patient:     patient,
	}
}

func (f *billingFixture) openShift(t *testing.T) *entity.CashierShift {
	t.Helper()
	shift := &entity.CashierShift{
		ClinicID:       f.actor.ClinicID,
		CashierID:      f.actor.ID,
		CashierName:    f.actor.Name,
		OpeningBalance: decimal.NewFromInt(500),
		Status:         enum.ShiftStatusOpen,
		OpenedAt:       time.Now().Add(-time.Hour),
	}
	require.NoError(t, f.shiftRepo.Create(context.Background(), shift))
	return shift
}

func (f *billingFixture) createBill(t *testing.T, services ...ServiceInput) *entity.PatientBill {
	t.Helper()
	bill, err := f.svc.CreateBill(context.Background(), f.actor, &CreateBillInput{
		PatientID: f.patient.ID,
		Services:  services,
	})
	require.NoError(t, err)
	return bill
}

func consultation(price int64) ServiceInput {
	return ServiceInput{ServiceName: "Consultation", Department: "opd", Quantity: 1, UnitPrice: decimal.NewFromInt(price)}
}

func TestCreateBill(t *testing.T) {
	f := setupBillingTest(t)

	bill := f.createBill(t,
		ServiceInput{ServiceName: "Consultation", Department: "opd", Quantity: 1, UnitPrice: decimal.NewFromInt(60)},
		ServiceInput{ServiceName: "Malaria Test", Quantity: 2, UnitPrice: decimal.NewFromInt(20)},
	)

	assert.Equal(t, fmt.Sprintf("BILL-%d-00001", time.Now().Year()), bill.BillNumber)
	assert.Equal(t, "John Otieno", bill.PatientName)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, bill.PaidAmount.IsZero())
	assert.True(t, bill.BalanceAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, enum.BillStatusPending, bill.Status)

	require.Len(t, bill.Services, 2)
	assert.Equal(t, 0, bill.Services[0].Position)
	assert.Equal(t, 1, bill.Services[1].Position)
	// Department defaults when omitted
	assert.Equal(t, "general", bill.Services[1].Department)
	assert.True(t, bill.Services[1].TotalPrice.Equal(decimal.NewFromInt(40)))
}

func TestCreateBillValidation(t *testing.T) {
	f := setupBillingTest(t)
	ctx := context.Background()

	t.Run("no services", func(t *testing.T) {
		_, err := f.svc.CreateBill(ctx, f.actor, &CreateBillInput{PatientID: f.patient.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "At least one service is required")
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := f.svc.CreateBill(ctx, f.actor, &CreateBillInput{
			PatientID: uuid.New(),
			Services:  []ServiceInput{consultation(50)},
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("missing actor identity", func(t *testing.T) {
		_, err := f.svc.CreateBill(ctx, entity.Actor{}, &CreateBillInput{
			PatientID: f.patient.ID,
			Services:  []ServiceInput{consultation(50)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Actor identity required")
	})
}

func TestRecordPayment(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)
	ctx := context.Background()

	bill := f.createBill(t, consultation(60), ServiceInput{ServiceName: "Malaria Test", Quantity: 2, UnitPrice: decimal.NewFromInt(20)})

	result, err := f.svc.RecordPayment(ctx, f.actor, bill.ID, &PaymentInput{
		Amount:             decimal.NewFromInt(40),
		Method:             "cash",
		Date:               time.Now(),
		PaidServiceIndexes: []int{0},
	})
	require.NoError(t, err)

	assert.True(t, result.Bill.PaidAmount.Equal(decimal.NewFromInt(40)))
	assert.True(t, result.Bill.BalanceAmount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, enum.BillStatusPartial, result.Bill.Status)

	receipt := result.Receipt
	assert.Equal(t, fmt.Sprintf("RCT-%d-00001", time.Now().Year()), receipt.ReceiptNumber)
	assert.True(t, receipt.PaymentAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "cash", receipt.PaymentMethod)
	assert.Equal(t, f.actor.ID, receipt.CashierID)
	assert.Equal(t, f.actor.Name, receipt.CashierName)
	assert.Equal(t, enum.ReceiptStatusActive, receipt.Status)
	require.Len(t, receipt.ServiceDetails, 1)
	assert.Equal(t, "Consultation", receipt.ServiceDetails[0].ServiceName)

	// Referenced line marked paid, the other untouched
	lines, err := f.serviceRepo.GetByBillID(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, lines[0].Paid)
	assert.False(t, lines[1].Paid)
}

func TestRecordPaymentPostsCashToLedger(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)
	ctx := context.Background()

	bill := f.createBill(t, consultation(100))
	_, err := f.svc.RecordPayment(ctx, f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(40),
		Method: "cash",
		Date:   time.Now(),
	})
	require.NoError(t, err)

	cash, err := f.ledgerRepo.GetByCode(ctx, "01")
	require.NoError(t, err)
	require.NotNil(t, cash)
	assert.True(t, cash.Balance.Equal(decimal.NewFromInt(40)))

	cashAtHand, err := f.ledgerRepo.GetByCode(ctx, "3")
	require.NoError(t, err)
	require.NotNil(t, cashAtHand)
	assert.True(t, cashAtHand.Balance.Equal(decimal.NewFromInt(40)))
	require.NotNil(t, cashAtHand.ParentID)
	assert.Equal(t, cash.ID, *cashAtHand.ParentID)

	// A second cash payment accumulates, no new accounts
	_, err = f.svc.RecordPayment(ctx, f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(10),
		Method: "cash",
		Date:   time.Now(),
	})
	require.NoError(t, err)
	assert.Len(t, f.ledgerRepo.accounts, 2)
	assert.True(t, cash.Balance.Equal(decimal.NewFromInt(50)))
}

func TestRecordPaymentMpesaSkipsLedger(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)

	bill := f.createBill(t, consultation(100))
	_, err := f.svc.RecordPayment(context.Background(), f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(40),
		Method: "mpesa",
		Date:   time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.ledgerRepo.accounts)
}

func TestRecordPaymentRequiresOpenShift(t *testing.T) {
	f := setupBillingTest(t)
	bill := f.createBill(t, consultation(100))

	_, err := f.svc.RecordPayment(context.Background(), f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(40),
		Method: "cash",
		Date:   time.Now(),
	})
	assert.ErrorIs(t, err, apperror.ErrNoOpenShift)
}

func TestRecordPaymentOverpayRejected(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)
	ctx := context.Background()

	bill := f.createBill(t, consultation(100))
	_, err := f.svc.RecordPayment(ctx, f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(40),
		Method: "cash",
		Date:   time.Now(),
	})
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(ctx, f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(70),
		Method: "cash",
		Date:   time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "60.00")
	assert.Contains(t, err.Error(), "70.00")
}

func TestRecordPaymentValidation(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)
	bill := f.createBill(t, consultation(100))

	_, err := f.svc.RecordPayment(context.Background(), f.actor, bill.ID, &PaymentInput{
		Amount:    decimal.NewFromInt(-5),
		FromLease: true,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"amount", "payment_method", "payment_date", "lease_details"}, fields)
}

func TestRecordPaymentSkipsUnknownPositions(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)

	bill := f.createBill(t, consultation(100))
	result, err := f.svc.RecordPayment(context.Background(), f.actor, bill.ID, &PaymentInput{
		Amount:             decimal.NewFromInt(50),
		Method:             "cash",
		Date:               time.Now(),
		PaidServiceIndexes: []int{0, 7},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.IntList([]int{0}), result.Receipt.PaidServicePos)
	require.Len(t, result.Receipt.ServiceDetails, 1)
}

func TestRecordPaymentSettlesBill(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)

	bill := f.createBill(t, consultation(100))
	result, err := f.svc.RecordPayment(context.Background(), f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: "cash",
		Date:   time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusPaid, result.Bill.Status)
	assert.True(t, result.Bill.BalanceAmount.IsZero())
}

func TestRecordPaymentSurvivesLineMarkFailure(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)
	f.serviceRepo.markPaidErr = fmt.Errorf("lock timeout")

	bill := f.createBill(t, consultation(100))
	result, err := f.svc.RecordPayment(context.Background(), f.actor, bill.ID, &PaymentInput{
		Amount:             decimal.NewFromInt(50),
		Method:             "cash",
		Date:               time.Now(),
		PaidServiceIndexes: []int{0},
	})
	require.NoError(t, err)
	assert.True(t, result.Bill.PaidAmount.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, result.Receipt)
}

func TestAddServicesToBill(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)
	ctx := context.Background()

	bill := f.createBill(t, consultation(100))
	_, err := f.svc.RecordPayment(ctx, f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: "cash",
		Date:   time.Now(),
	})
	require.NoError(t, err)

	// New charges reopen a settled bill
	updated, err := f.svc.AddServicesToBill(ctx, f.actor, bill.ID, []ServiceInput{
		{ServiceName: "X-Ray", Department: "radiology", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
	})
	require.NoError(t, err)

	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(130)))
	assert.True(t, updated.BalanceAmount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, enum.BillStatusPartial, updated.Status)
	require.Len(t, updated.Services, 2)
	assert.Equal(t, 1, updated.Services[1].Position)
}

func TestAppendToActiveBill(t *testing.T) {
	f := setupBillingTest(t)
	ctx := context.Background()

	// No bill yet: a fresh one is created
	bill, err := f.svc.AppendToActiveBill(ctx, f.actor, f.patient.ID, []ServiceInput{
		{ServiceName: "Consultation", Department: "opd", Quantity: 1, UnitPrice: decimal.NewFromInt(60)},
	})
	require.NoError(t, err)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(60)))
	require.Len(t, bill.Services, 1)

	// Existing bill: charges are appended, not a second bill created
	again, err := f.svc.AppendToActiveBill(ctx, f.actor, f.patient.ID, []ServiceInput{
		{ServiceName: "Dressing", Quantity: 1, UnitPrice: decimal.NewFromInt(15)},
	})
	require.NoError(t, err)
	assert.Equal(t, bill.ID, again.ID)
	assert.True(t, again.TotalAmount.Equal(decimal.NewFromInt(75)))
	require.Len(t, again.Services, 2)
	assert.Equal(t, 1, again.Services[1].Position)
}

func TestFindActiveBill(t *testing.T) {
	f := setupBillingTest(t)
	ctx := context.Background()

	_, err := f.svc.FindActiveBill(ctx, f.patient.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	bill := f.createBill(t, consultation(100))
	found, err := f.svc.FindActiveBill(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, found.ID)
	assert.Len(t, found.Services, 1)
}

func TestVoidReceipt(t *testing.T) {
	f := setupBillingTest(t)
	f.openShift(t)
	ctx := context.Background()

	bill := f.createBill(t, consultation(100))
	result, err := f.svc.RecordPayment(ctx, f.actor, bill.ID, &PaymentInput{
		Amount: decimal.NewFromInt(50),
		Method: "cash",
		Date:   time.Now(),
	})
	require.NoError(t, err)

	voided, err := f.svc.VoidOrRefundReceipt(ctx, f.actor, result.Receipt.ID, enum.ReceiptStatusVoided, "cashier error")
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStatusVoided, voided.Status)
	assert.Equal(t, "cashier error", voided.VoidReason)
	require.NotNil(t, voided.VoidedBy)
	assert.Equal(t, f.actor.ID, *voided.VoidedBy)
	// The amount never changes
	assert.True(t, voided.PaymentAmount.Equal(decimal.NewFromInt(50)))

	_, err = f.svc.VoidOrRefundReceipt(ctx, f.actor, result.Receipt.ID, enum.ReceiptStatusRefunded, "again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only active receipts")

	_, err = f.svc.VoidOrRefundReceipt(ctx, f.actor, result.Receipt.ID, enum.ReceiptStatusActive, "back to active")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be voided or refunded")
}
