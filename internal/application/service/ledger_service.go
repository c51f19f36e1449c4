package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// LedgerService handles the chart of accounts
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
	txManager  repository.TxManager
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository, txManager repository.TxManager) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, txManager: txManager}
}

// CreateAccountInput represents the create account input
type CreateAccountInput struct {
	AccountCode string
	AccountName string
	AccountType string
	ParentID    *uuid.UUID
	Description string
}

// CreateAccount creates a ledger account with a zero opening balance.
// Accounts form a two-level tree: a parent must itself be top-level.
func (s *LedgerService) CreateAccount(ctx context.Context, actor entity.Actor, input *CreateAccountInput) (*entity.LedgerAccount, error) {
	if input.AccountName == "" {
		return nil, apperror.NewBadRequestError("Account name is required")
	}
	if input.AccountType == "" {
		input.AccountType = "asset"
	}

	if input.ParentID != nil {
		parent, err := s.ledgerRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent account")
		}
		if !parent.IsTopLevel() {
			return nil, apperror.NewBadRequestError("Accounts can only nest one level deep")
		}
	}

	account := &entity.LedgerAccount{
		ClinicID:    actor.ClinicID,
		AccountCode: input.AccountCode,
		AccountName: input.AccountName,
		AccountType: input.AccountType,
		ParentID:    input.ParentID,
		Balance:     decimal.Zero,
		Description: input.Description,
		IsActive:    true,
		CreatedBy:   actor.ID,
	}
	if err := s.ledgerRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *LedgerService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.LedgerAccount, error) {
	account, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}
	return account, nil
}

// ListAccounts returns the chart of accounts as a tree of top-level
// accounts with their children attached.
func (s *LedgerService) ListAccounts(ctx context.Context) ([]entity.LedgerAccount, error) {
	flat, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	childrenOf := make(map[uuid.UUID][]entity.LedgerAccount)
	var roots []entity.LedgerAccount
	for _, account := range flat {
		if account.ParentID != nil {
			childrenOf[*account.ParentID] = append(childrenOf[*account.ParentID], account)
		}
	}
	for _, account := range flat {
		if account.ParentID == nil {
			account.Children = childrenOf[account.ID]
			roots = append(roots, account)
		}
	}
	return roots, nil
}

// UpdateAccountInput represents the update account input
type UpdateAccountInput struct {
	AccountCode *string
	AccountName *string
	AccountType *string
	Description *string
	IsActive    *bool
}

// UpdateAccount updates account metadata. Balances only move through
// AdjustBalance or transfers.
func (s *LedgerService) UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*entity.LedgerAccount, error) {
	account, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}

	if input.AccountCode != nil {
		account.AccountCode = *input.AccountCode
	}
	if input.AccountName != nil {
		account.AccountName = *input.AccountName
	}
	if input.AccountType != nil {
		account.AccountType = *input.AccountType
	}
	if input.Description != nil {
		account.Description = *input.Description
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := s.ledgerRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount deletes an account. Accounts with sub-accounts cannot be
// deleted until the children are removed.
func (s *LedgerService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.NewNotFoundError("Account")
	}

	children, err := s.ledgerRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return apperror.NewConflictError("Cannot delete account with sub-accounts")
	}

	return s.ledgerRepo.Delete(ctx, id)
}
