package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/pkg/apperror"
)

type financeFixture struct {
	svc        *FinanceService
	ledgerRepo *fakeLedgerRepo
	actor      entity.Actor
	cash       *entity.LedgerAccount
	bank       *entity.LedgerAccount
}

func setupFinanceTest(t *testing.T) *financeFixture {
	t.Helper()
	ledgerRepo := newFakeLedgerRepo()
	svc := NewFinanceService(newFakeExpenseRepo(), newFakeTransferRepo(), ledgerRepo, fakeTxManager{})
	actor := entity.Actor{ID: uuid.New(), Name: "Alice Admin", ClinicID: uuid.New(), Roles: []string{"admin"}}

	ctx := context.Background()
	cash := &entity.LedgerAccount{ClinicID: actor.ClinicID, AccountCode: "01", AccountName: "Cash", AccountType: "asset", Balance: decimal.NewFromInt(1000), IsActive: true}
	bank := &entity.LedgerAccount{ClinicID: actor.ClinicID, AccountCode: "02", AccountName: "Bank", AccountType: "asset", Balance: decimal.NewFromInt(5000), IsActive: true}
	require.NoError(t, ledgerRepo.Create(ctx, cash))
	require.NoError(t, ledgerRepo.Create(ctx, bank))

	return &financeFixture{svc: svc, ledgerRepo: ledgerRepo, actor: actor, cash: cash, bank: bank}
}

func TestRecordExpense(t *testing.T) {
	f := setupFinanceTest(t)
	ctx := context.Background()

	expense, err := f.svc.RecordExpense(ctx, f.actor, &RecordExpenseInput{
		AccountID:   f.cash.ID,
		Category:    "utilities",
		Description: "Electricity bill",
		Amount:      decimal.NewFromInt(300),
		PaidTo:      "Kenya Power",
	})
	require.NoError(t, err)
	assert.Equal(t, f.actor.ID, expense.RecordedBy)
	assert.False(t, expense.ExpenseDate.IsZero())

	// The source account is debited
	assert.True(t, f.cash.Balance.Equal(decimal.NewFromInt(700)))
}

func TestRecordExpenseValidation(t *testing.T) {
	f := setupFinanceTest(t)
	ctx := context.Background()

	_, err := f.svc.RecordExpense(ctx, f.actor, &RecordExpenseInput{AccountID: f.cash.ID})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"amount", "description", "category"}, fields)

	_, err = f.svc.RecordExpense(ctx, f.actor, &RecordExpenseInput{
		AccountID:   uuid.New(),
		Category:    "utilities",
		Description: "Water bill",
		Amount:      decimal.NewFromInt(50),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestTransfer(t *testing.T) {
	f := setupFinanceTest(t)
	ctx := context.Background()

	transfer, err := f.svc.Transfer(ctx, f.actor, &TransferInput{
		FromAccountID: f.bank.ID,
		ToAccountID:   f.cash.ID,
		Amount:        decimal.NewFromInt(2000),
		Reason:        "float top-up",
	})
	require.NoError(t, err)
	assert.Equal(t, f.actor.ID, transfer.TransferredBy)
	assert.True(t, f.bank.Balance.Equal(decimal.NewFromInt(3000)))
	assert.True(t, f.cash.Balance.Equal(decimal.NewFromInt(3000)))
}

func TestTransferValidation(t *testing.T) {
	f := setupFinanceTest(t)
	ctx := context.Background()

	_, err := f.svc.Transfer(ctx, f.actor, &TransferInput{
		FromAccountID: f.bank.ID,
		ToAccountID:   f.cash.ID,
		Amount:        decimal.Zero,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")

	_, err = f.svc.Transfer(ctx, f.actor, &TransferInput{
		FromAccountID: f.cash.ID,
		ToAccountID:   f.cash.ID,
		Amount:        decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same account")

	_, err = f.svc.Transfer(ctx, f.actor, &TransferInput{
		FromAccountID: uuid.New(),
		ToAccountID:   f.cash.ID,
		Amount:        decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Source account")
}
