package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/apperror"
)

func setupShiftTest(t *testing.T) (*ShiftService, *fakeShiftRepo, *fakeReceiptRepo, entity.Actor) {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	receiptRepo := newFakeReceiptRepo()
	svc := NewShiftService(shiftRepo, receiptRepo)
	actor := entity.Actor{
		ID:       uuid.New(),
		Name:     "Jane Wanjiku",
		ClinicID: uuid.New(),
		Roles:    []string{"cashier"},
	}
	return svc, shiftRepo, receiptRepo, actor
}

func TestStartShift(t *testing.T) {
	svc, _, _, actor := setupShiftTest(t)
	ctx := context.Background()

	shift, err := svc.StartShift(ctx, actor, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, actor.ID, shift.CashierID)
	assert.Equal(t, actor.Name, shift.CashierName)
	assert.True(t, shift.OpeningBalance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, enum.ShiftStatusOpen, shift.Status)
	assert.True(t, shift.IsOpen())

	t.Run("negative opening balance", func(t *testing.T) {
		_, err := svc.StartShift(ctx, actor, decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("second open shift rejected", func(t *testing.T) {
		_, err := svc.StartShift(ctx, actor, decimal.NewFromInt(200))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already open")
	})
}

func TestCloseShift(t *testing.T) {
	svc, _, receiptRepo, actor := setupShiftTest(t)
	ctx := context.Background()

	shift, err := svc.StartShift(ctx, actor, decimal.NewFromInt(500))
	require.NoError(t, err)

	// Two active receipts inside the window plus a voided one that must
	// not count towards collections.
	for _, amount := range []int64{300, 200} {
		require.NoError(t, receiptRepo.Create(ctx, &entity.Receipt{
			CashierID:     actor.ID,
			PaymentAmount: decimal.NewFromInt(amount),
			Status:        enum.ReceiptStatusActive,
		}))
	}
	require.NoError(t, receiptRepo.Create(ctx, &entity.Receipt{
		CashierID:     actor.ID,
		PaymentAmount: decimal.NewFromInt(999),
		Status:        enum.ReceiptStatusVoided,
	}))

	closed, err := svc.CloseShift(ctx, actor, shift.ID, decimal.NewFromInt(980), "till counted")
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	assert.True(t, closed.TotalCollected.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, int64(2), closed.ReceiptCount)
	assert.True(t, closed.ExpectedCash.Equal(decimal.NewFromInt(1000)))
	assert.True(t, closed.Variance().Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, "till counted", closed.Notes)

	t.Run("already closed", func(t *testing.T) {
		_, err := svc.CloseShift(ctx, actor, shift.ID, decimal.NewFromInt(980), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already closed")
	})
}

func TestCloseShiftCountsBackdatedPaymentDates(t *testing.T) {
	svc, _, receiptRepo, actor := setupShiftTest(t)
	ctx := context.Background()

	shift, err := svc.StartShift(ctx, actor, decimal.NewFromInt(500))
	require.NoError(t, err)

	// Receipts belong to the shift they were issued in, regardless of the
	// caller-supplied payment date.
	require.NoError(t, receiptRepo.Create(ctx, &entity.Receipt{
		CashierID:     actor.ID,
		PaymentAmount: decimal.NewFromInt(40),
		PaymentDate:   time.Now().Add(-48 * time.Hour),
		Status:        enum.ReceiptStatusActive,
	}))

	closed, err := svc.CloseShift(ctx, actor, shift.ID, decimal.NewFromInt(540), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed.ReceiptCount)
	assert.True(t, closed.TotalCollected.Equal(decimal.NewFromInt(40)))
	assert.True(t, closed.ExpectedCash.Equal(decimal.NewFromInt(540)))
}

func TestCloseShiftAuthorization(t *testing.T) {
	svc, _, _, actor := setupShiftTest(t)
	ctx := context.Background()

	shift, err := svc.StartShift(ctx, actor, decimal.Zero)
	require.NoError(t, err)

	other := entity.Actor{ID: uuid.New(), Name: "Peter Kamau", ClinicID: actor.ClinicID, Roles: []string{"cashier"}}
	_, err = svc.CloseShift(ctx, other, shift.ID, decimal.Zero, "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	admin := entity.Actor{ID: uuid.New(), Name: "Alice Admin", ClinicID: actor.ClinicID, Roles: []string{"admin"}}
	closed, err := svc.CloseShift(ctx, admin, shift.ID, decimal.Zero, "closed by admin")
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStatusClosed, closed.Status)
}

func TestCurrentShift(t *testing.T) {
	svc, _, _, actor := setupShiftTest(t)
	ctx := context.Background()

	_, err := svc.CurrentShift(ctx, actor.ID)
	assert.ErrorIs(t, err, apperror.ErrNoOpenShift)

	started, err := svc.StartShift(ctx, actor, decimal.NewFromInt(100))
	require.NoError(t, err)

	current, err := svc.CurrentShift(ctx, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, started.ID, current.ID)
}

func TestGetShiftNotFound(t *testing.T) {
	svc, _, _, _ := setupShiftTest(t)
	_, err := svc.GetShift(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
