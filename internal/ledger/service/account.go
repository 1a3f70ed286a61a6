package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PauloHenriqueGrancieri/finances/internal/platform/id"
	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

// AccountInput carries the client-supplied fields of an account.
type AccountInput struct {
	Name           string
	InitialBalance decimal.Decimal
}

// UpdateAccountInput carries account update fields. A nil InitialBalance
// leaves the initial balance untouched; an empty Name leaves the name
// untouched.
type UpdateAccountInput struct {
	Name           string
	InitialBalance *decimal.Decimal
}

// AccountService manages the account lifecycle. Deleting an account unwinds
// every transaction that references it before removing the rows.
type AccountService struct {
	accounts  storage.AccountStore
	cashFlows storage.CashFlowStore
	transfers storage.TransferStore
	balance   *BalanceAdjuster
	clock     func() time.Time
	newID     func() (string, error)
}

// NewAccountService creates an account lifecycle manager over ledger storage.
func NewAccountService(accounts storage.AccountStore, cashFlows storage.CashFlowStore, transfers storage.TransferStore, balance *BalanceAdjuster) *AccountService {
	return &AccountService{
		accounts:  accounts,
		cashFlows: cashFlows,
		transfers: transfers,
		balance:   balance,
		clock:     time.Now,
		newID:     id.NewID,
	}
}

// Create stores a new account with its balance set to the initial balance.
func (s *AccountService) Create(ctx context.Context, in AccountInput) (storage.Account, error) {
	if s == nil || s.accounts == nil {
		return storage.Account{}, fmt.Errorf("account service is not configured")
	}

	accountID, err := s.newID()
	if err != nil {
		return storage.Account{}, fmt.Errorf("mint account id: %w", err)
	}
	account := storage.Account{
		ID:             accountID,
		Name:           in.Name,
		InitialBalance: in.InitialBalance,
		Balance:        in.InitialBalance,
		CreatedAt:      s.clock().UTC(),
	}
	if err := s.accounts.PutAccount(ctx, account); err != nil {
		return storage.Account{}, fmt.Errorf("persist account: %w", err)
	}
	return account, nil
}

// Get returns one account by id.
func (s *AccountService) Get(ctx context.Context, accountID string) (storage.Account, error) {
	if s == nil || s.accounts == nil {
		return storage.Account{}, fmt.Errorf("account service is not configured")
	}
	return s.accounts.GetAccount(ctx, accountID)
}

// GetByName returns one account by name.
func (s *AccountService) GetByName(ctx context.Context, name string) (storage.Account, error) {
	if s == nil || s.accounts == nil {
		return storage.Account{}, fmt.Errorf("account service is not configured")
	}
	return s.accounts.GetAccountByName(ctx, name)
}

// List returns every account.
func (s *AccountService) List(ctx context.Context) ([]storage.Account, error) {
	if s == nil || s.accounts == nil {
		return nil, fmt.Errorf("account service is not configured")
	}
	return s.accounts.ListAccounts(ctx)
}

// Update renames an account and adjusts its balance by the delta between
// the old and new initial balance. The shift models a capital injection or
// withdrawal, independent of transaction history. Absent accounts surface
// storage.ErrNotFound.
func (s *AccountService) Update(ctx context.Context, accountID string, in UpdateAccountInput) (storage.Account, error) {
	if s == nil || s.accounts == nil {
		return storage.Account{}, fmt.Errorf("account service is not configured")
	}

	account, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return storage.Account{}, err
	}

	if in.Name != "" && in.Name != account.Name {
		account.Name = in.Name
	}
	if in.InitialBalance != nil && !in.InitialBalance.Equal(account.InitialBalance) {
		delta := in.InitialBalance.Sub(account.InitialBalance)
		account.Balance = account.Balance.Add(delta)
		account.InitialBalance = *in.InitialBalance
	}

	if err := s.accounts.PutAccount(ctx, account); err != nil {
		return storage.Account{}, fmt.Errorf("persist account: %w", err)
	}
	return account, nil
}

// Delete unwinds every transaction referencing the account, removes those
// records, then removes the account itself. Absent accounts report
// (false, nil).
func (s *AccountService) Delete(ctx context.Context, accountID string) (bool, error) {
	if s == nil || s.accounts == nil || s.cashFlows == nil || s.transfers == nil || s.balance == nil {
		return false, fmt.Errorf("account service is not configured")
	}

	account, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load account: %w", err)
	}

	cashFlows, err := s.cashFlows.ListCashFlowsByAccountName(ctx, account.Name)
	if err != nil {
		return false, fmt.Errorf("list owned cash flows: %w", err)
	}
	for _, record := range cashFlows {
		if record.Type == storage.TypeIncome {
			_, err = s.balance.Decrease(ctx, record.AccountID, record.Amount)
		} else {
			_, err = s.balance.Increase(ctx, record.AccountID, record.Amount)
		}
		if err != nil {
			return false, fmt.Errorf("reverse cash flow effect: %w", err)
		}
		if err := s.cashFlows.DeleteCashFlow(ctx, record.ID); err != nil {
			return false, fmt.Errorf("delete cash flow: %w", err)
		}
	}

	asSource, err := s.transfers.ListTransfersBySourceAccountName(ctx, account.Name)
	if err != nil {
		return false, fmt.Errorf("list transfers by source: %w", err)
	}
	asTarget, err := s.transfers.ListTransfersByTargetAccountName(ctx, account.Name)
	if err != nil {
		return false, fmt.Errorf("list transfers by target: %w", err)
	}
	// The account can be both sides of one transfer; unwind each record once.
	seen := make(map[string]bool, len(asSource)+len(asTarget))
	for _, record := range append(asSource, asTarget...) {
		if seen[record.ID] {
			continue
		}
		seen[record.ID] = true

		if _, err := s.balance.Increase(ctx, record.SourceAccountID, record.Amount); err != nil {
			return false, fmt.Errorf("reverse transfer effect on source: %w", err)
		}
		if _, err := s.balance.Decrease(ctx, record.TargetAccountID, record.Amount); err != nil {
			return false, fmt.Errorf("reverse transfer effect on target: %w", err)
		}
		if err := s.transfers.DeleteTransfer(ctx, record.ID); err != nil {
			return false, fmt.Errorf("delete transfer: %w", err)
		}
	}

	if err := s.accounts.DeleteAccount(ctx, account.ID); err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return true, nil
}

// DeleteAll wipes every cash flow, transfer and account, in that order,
// with no balance reversal: the referencing rows and the accounts go
// together, so balances become moot.
func (s *AccountService) DeleteAll(ctx context.Context) error {
	if s == nil || s.accounts == nil || s.cashFlows == nil || s.transfers == nil {
		return fmt.Errorf("account service is not configured")
	}

	if err := s.cashFlows.DeleteAllCashFlows(ctx); err != nil {
		return fmt.Errorf("clear cash flows: %w", err)
	}
	if err := s.transfers.DeleteAllTransfers(ctx); err != nil {
		return fmt.Errorf("clear transfers: %w", err)
	}
	if err := s.accounts.DeleteAllAccounts(ctx); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	return nil
}
