package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
)

func setupLedgerTest(t *testing.T) (*LedgerService, *fakeLedgerRepo, entity.Actor) {
	t.Helper()
	ledgerRepo := newFakeLedgerRepo()
	svc := NewLedgerService(ledgerRepo, fakeTxManager{})
	actor := entity.Actor{ID: uuid.New(), Name: "Alice Admin", ClinicID: uuid.New(), Roles: []string{"admin"}}
	return svc, ledgerRepo, actor
}

func TestCreateAccount(t *testing.T) {
	svc, _, actor := setupLedgerTest(t)
	ctx := context.Background()

	parent, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{
		AccountCode: "01",
		AccountName: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "asset", parent.AccountType)
	assert.True(t, parent.Balance.IsZero())
	assert.True(t, parent.IsActive)
	assert.True(t, parent.IsTopLevel())

	child, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{
		AccountCode: "3",
		AccountName: "Cash at Hand",
		ParentID:    &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	t.Run("nesting beyond two levels rejected", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{
			AccountName: "Petty Cash",
			ParentID:    &child.ID,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "one level deep")
	})

	t.Run("unknown parent", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{
			AccountName: "Orphan",
			ParentID:    &missing,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Parent account")
	})

	t.Run("name required", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "99"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Account name is required")
	})

	// Duplicate codes are allowed; lookup resolves to the oldest
	dup, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "01", AccountName: "Cash Duplicate"})
	require.NoError(t, err)
	assert.NotEqual(t, parent.ID, dup.ID)
}

func TestListAccountsTree(t *testing.T) {
	svc, _, actor := setupLedgerTest(t)
	ctx := context.Background()

	cash, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "01", AccountName: "Cash"})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "3", AccountName: "Cash at Hand", ParentID: &cash.ID})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "02", AccountName: "Bank", AccountType: "asset"})
	require.NoError(t, err)

	roots, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	for _, root := range roots {
		if root.ID == cash.ID {
			require.Len(t, root.Children, 1)
			assert.Equal(t, "Cash at Hand", root.Children[0].AccountName)
		}
	}
}

func TestUpdateAccount(t *testing.T) {
	svc, _, actor := setupLedgerTest(t)
	ctx := context.Background()

	account, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "01", AccountName: "Cash"})
	require.NoError(t, err)

	newName := "Cash Box"
	inactive := false
	updated, err := svc.UpdateAccount(ctx, account.ID, &UpdateAccountInput{
		AccountName: &newName,
		IsActive:    &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cash Box", updated.AccountName)
	assert.False(t, updated.IsActive)
	// Untouched fields survive
	assert.Equal(t, "01", updated.AccountCode)
}

func TestDeleteAccount(t *testing.T) {
	svc, _, actor := setupLedgerTest(t)
	ctx := context.Background()

	parent, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "01", AccountName: "Cash"})
	require.NoError(t, err)
	child, err := svc.CreateAccount(ctx, actor, &CreateAccountInput{AccountCode: "3", AccountName: "Cash at Hand", ParentID: &parent.ID})
	require.NoError(t, err)

	err = svc.DeleteAccount(ctx, parent.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sub-accounts")

	require.NoError(t, svc.DeleteAccount(ctx, child.ID))
	require.NoError(t, svc.DeleteAccount(ctx, parent.ID))
}
