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

// TransferInput carries the client-supplied fields of a transfer record.
// The transaction type is always TRANSFER and never client-supplied.
type TransferInput struct {
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	SourceAccountID string
	TargetAccountID string
}

// TransferService creates, reads, updates and deletes two-account transfer
// records, driving the balance adjuster on both legs of every mutation.
type TransferService struct {
	transfers storage.TransferStore
	accounts  storage.AccountStore
	balance   *BalanceAdjuster
	newID     func() (string, error)
}

// NewTransferService creates a transfer engine over ledger storage.
func NewTransferService(transfers storage.TransferStore, accounts storage.AccountStore, balance *BalanceAdjuster) *TransferService {
	return &TransferService{
		transfers: transfers,
		accounts:  accounts,
		balance:   balance,
		newID:     id.NewID,
	}
}

// Create stores a new transfer bound to both accounts and applies its
// effect: the source loses Amount, the target gains it. The source side is
// checked first when naming a missing reference.
func (s *TransferService) Create(ctx context.Context, in TransferInput) (storage.Transfer, error) {
	if s == nil || s.transfers == nil || s.accounts == nil || s.balance == nil {
		return storage.Transfer{}, fmt.Errorf("transfer service is not configured")
	}

	source, target, err := s.resolveAccounts(ctx, in.SourceAccountID, in.TargetAccountID)
	if err != nil {
		return storage.Transfer{}, err
	}

	recordID, err := s.newID()
	if err != nil {
		return storage.Transfer{}, fmt.Errorf("mint transfer id: %w", err)
	}
	record := storage.Transfer{
		ID:              recordID,
		Amount:          in.Amount,
		Description:     in.Description,
		TransactionDate: in.TransactionDate,
		SourceAccountID: source.ID,
		TargetAccountID: target.ID,
	}

	if err := s.applyEffect(ctx, record); err != nil {
		return storage.Transfer{}, err
	}
	if err := s.transfers.PutTransfer(ctx, record); err != nil {
		return storage.Transfer{}, fmt.Errorf("persist transfer: %w", err)
	}
	return record, nil
}

// Get returns one transfer record by id.
func (s *TransferService) Get(ctx context.Context, recordID string) (storage.Transfer, error) {
	if s == nil || s.transfers == nil {
		return storage.Transfer{}, fmt.Errorf("transfer service is not configured")
	}
	return s.transfers.GetTransfer(ctx, recordID)
}

// List returns every transfer record.
func (s *TransferService) List(ctx context.Context) ([]storage.Transfer, error) {
	if s == nil || s.transfers == nil {
		return nil, fmt.Errorf("transfer service is not configured")
	}
	return s.transfers.ListTransfers(ctx)
}

// ListByAccountName returns the transfers where the named account is source
// or target, source matches first, failing when the name resolves to no
// account.
func (s *TransferService) ListByAccountName(ctx context.Context, name string) ([]storage.Transfer, error) {
	if s == nil || s.transfers == nil || s.accounts == nil {
		return nil, fmt.Errorf("transfer service is not configured")
	}
	if _, err := s.accounts.GetAccountByName(ctx, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errAccountNotFoundByName(name)
		}
		return nil, fmt.Errorf("resolve account by name: %w", err)
	}

	asSource, err := s.transfers.ListTransfersBySourceAccountName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list transfers by source: %w", err)
	}
	asTarget, err := s.transfers.ListTransfersByTargetAccountName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list transfers by target: %w", err)
	}
	return append(asSource, asTarget...), nil
}

// Update rewrites a transfer record and moves its effect onto the
// (possibly different) pair of accounts. Both new accounts are resolved
// before the old effect is reversed so a bad reference leaves balances
// untouched. Absent records surface storage.ErrNotFound.
func (s *TransferService) Update(ctx context.Context, recordID string, in TransferInput) (storage.Transfer, error) {
	if s == nil || s.transfers == nil || s.accounts == nil || s.balance == nil {
		return storage.Transfer{}, fmt.Errorf("transfer service is not configured")
	}

	record, err := s.transfers.GetTransfer(ctx, recordID)
	if err != nil {
		return storage.Transfer{}, err
	}

	source, target, err := s.resolveAccounts(ctx, in.SourceAccountID, in.TargetAccountID)
	if err != nil {
		return storage.Transfer{}, err
	}

	if err := s.reverseEffect(ctx, record); err != nil {
		return storage.Transfer{}, err
	}

	record.Amount = in.Amount
	if in.Description != "" {
		record.Description = in.Description
	}
	record.TransactionDate = in.TransactionDate
	record.SourceAccountID = source.ID
	record.TargetAccountID = target.ID

	if err := s.applyEffect(ctx, record); err != nil {
		return storage.Transfer{}, err
	}
	if err := s.transfers.PutTransfer(ctx, record); err != nil {
		return storage.Transfer{}, fmt.Errorf("persist transfer: %w", err)
	}
	return record, nil
}

// Delete reverses a transfer's effect on both accounts and removes it.
// Absent records report (false, nil).
func (s *TransferService) Delete(ctx context.Context, recordID string) (bool, error) {
	if s == nil || s.transfers == nil || s.balance == nil {
		return false, fmt.Errorf("transfer service is not configured")
	}

	record, err := s.transfers.GetTransfer(ctx, recordID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load transfer: %w", err)
	}

	if err := s.reverseEffect(ctx, record); err != nil {
		return false, err
	}
	if err := s.transfers.DeleteTransfer(ctx, record.ID); err != nil {
		return false, fmt.Errorf("delete transfer: %w", err)
	}
	return true, nil
}

// DeleteAll reverses every transfer's effect, then clears the records.
func (s *TransferService) DeleteAll(ctx context.Context) error {
	if s == nil || s.transfers == nil || s.balance == nil {
		return fmt.Errorf("transfer service is not configured")
	}

	records, err := s.transfers.ListTransfers(ctx)
	if err != nil {
		return fmt.Errorf("list transfers: %w", err)
	}
	for _, record := range records {
		if err := s.reverseEffect(ctx, record); err != nil {
			return err
		}
	}
	if err := s.transfers.DeleteAllTransfers(ctx); err != nil {
		return fmt.Errorf("clear transfers: %w", err)
	}
	return nil
}

func (s *TransferService) resolveAccounts(ctx context.Context, sourceID, targetID string) (storage.Account, storage.Account, error) {
	source, err := s.accounts.GetAccount(ctx, sourceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Account{}, storage.Account{}, errSourceAccountNotFound(sourceID)
		}
		return storage.Account{}, storage.Account{}, fmt.Errorf("resolve source account: %w", err)
	}
	target, err := s.accounts.GetAccount(ctx, targetID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Account{}, storage.Account{}, errTargetAccountNotFound(targetID)
		}
		return storage.Account{}, storage.Account{}, fmt.Errorf("resolve target account: %w", err)
	}
	return source, target, nil
}

func (s *TransferService) applyEffect(ctx context.Context, record storage.Transfer) error {
	if _, err := s.balance.Decrease(ctx, record.SourceAccountID, record.Amount); err != nil {
		return fmt.Errorf("apply transfer effect on source: %w", err)
	}
	if _, err := s.balance.Increase(ctx, record.TargetAccountID, record.Amount); err != nil {
		return fmt.Errorf("apply transfer effect on target: %w", err)
	}
	return nil
}

func (s *TransferService) reverseEffect(ctx context.Context, record storage.Transfer) error {
	if _, err := s.balance.Increase(ctx, record.SourceAccountID, record.Amount); err != nil {
		return fmt.Errorf("reverse transfer effect on source: %w", err)
	}
	if _, err := s.balance.Decrease(ctx, record.TargetAccountID, record.Amount); err != nil {
		return fmt.Errorf("reverse transfer effect on target: %w", err)
	}
	return nil
}
