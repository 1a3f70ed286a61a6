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

// CashFlowInput carries the client-supplied fields of a cash flow record.
type CashFlowInput struct {
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	Type            storage.TransactionType
	AccountID       string
}

// CashFlowService creates, reads, updates and deletes single-account
// income/expense records, driving the balance adjuster on every mutation.
type CashFlowService struct {
	cashFlows storage.CashFlowStore
	accounts  storage.AccountStore
	balance   *BalanceAdjuster
	newID     func() (string, error)
}

// NewCashFlowService creates a cash flow engine over ledger storage.
func NewCashFlowService(cashFlows storage.CashFlowStore, accounts storage.AccountStore, balance *BalanceAdjuster) *CashFlowService {
	return &CashFlowService{
		cashFlows: cashFlows,
		accounts:  accounts,
		balance:   balance,
		newID:     id.NewID,
	}
}

// Create stores a new cash flow bound to the referenced account and applies
// its balance effect: INCOME increases, EXPENSE decreases.
func (s *CashFlowService) Create(ctx context.Context, in CashFlowInput) (storage.CashFlow, error) {
	if s == nil || s.cashFlows == nil || s.accounts == nil || s.balance == nil {
		return storage.CashFlow{}, fmt.Errorf("cash flow service is not configured")
	}
	if in.Type != storage.TypeIncome && in.Type != storage.TypeExpense {
		return storage.CashFlow{}, errInvalidCashFlowType(in.Type)
	}

	account, err := s.accounts.GetAccount(ctx, in.AccountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.CashFlow{}, errAccountNotFoundByID(in.AccountID)
		}
		return storage.CashFlow{}, fmt.Errorf("resolve account: %w", err)
	}

	recordID, err := s.newID()
	if err != nil {
		return storage.CashFlow{}, fmt.Errorf("mint cash flow id: %w", err)
	}
	record := storage.CashFlow{
		ID:              recordID,
		Amount:          in.Amount,
		Description:     in.Description,
		TransactionDate: in.TransactionDate,
		Type:            in.Type,
		AccountID:       account.ID,
	}

	if err := s.applyEffect(ctx, record); err != nil {
		return storage.CashFlow{}, err
	}
	if err := s.cashFlows.PutCashFlow(ctx, record); err != nil {
		return storage.CashFlow{}, fmt.Errorf("persist cash flow: %w", err)
	}
	return record, nil
}

// Get returns one cash flow record by id.
func (s *CashFlowService) Get(ctx context.Context, recordID string) (storage.CashFlow, error) {
	if s == nil || s.cashFlows == nil {
		return storage.CashFlow{}, fmt.Errorf("cash flow service is not configured")
	}
	return s.cashFlows.GetCashFlow(ctx, recordID)
}

// List returns every cash flow record.
func (s *CashFlowService) List(ctx context.Context) ([]storage.CashFlow, error) {
	if s == nil || s.cashFlows == nil {
		return nil, fmt.Errorf("cash flow service is not configured")
	}
	return s.cashFlows.ListCashFlows(ctx)
}

// ListByAccountName returns the cash flows owned by the named account,
// failing when the name resolves to no account.
func (s *CashFlowService) ListByAccountName(ctx context.Context, name string) ([]storage.CashFlow, error) {
	if s == nil || s.cashFlows == nil || s.accounts == nil {
		return nil, fmt.Errorf("cash flow service is not configured")
	}
	if _, err := s.accounts.GetAccountByName(ctx, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errAccountNotFoundByName(name)
		}
		return nil, fmt.Errorf("resolve account by name: %w", err)
	}
	return s.cashFlows.ListCashFlowsByAccountName(ctx, name)
}

// Update rewrites a cash flow record and moves its balance effect to the
// (possibly different) referenced account. The new account is resolved
// before the old effect is reversed so a bad reference leaves balances
// untouched. Absent records surface storage.ErrNotFound.
func (s *CashFlowService) Update(ctx context.Context, recordID string, in CashFlowInput) (storage.CashFlow, error) {
	if s == nil || s.cashFlows == nil || s.accounts == nil || s.balance == nil {
		return storage.CashFlow{}, fmt.Errorf("cash flow service is not configured")
	}

	record, err := s.cashFlows.GetCashFlow(ctx, recordID)
	if err != nil {
		return storage.CashFlow{}, err
	}

	newType := record.Type
	if in.Type != "" {
		if in.Type != storage.TypeIncome && in.Type != storage.TypeExpense {
			return storage.CashFlow{}, errInvalidCashFlowType(in.Type)
		}
		newType = in.Type
	}
	account, err := s.accounts.GetAccount(ctx, in.AccountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.CashFlow{}, errAccountNotFoundByID(in.AccountID)
		}
		return storage.CashFlow{}, fmt.Errorf("resolve account: %w", err)
	}

	if err := s.reverseEffect(ctx, record); err != nil {
		return storage.CashFlow{}, err
	}

	record.Amount = in.Amount
	if in.Description != "" {
		record.Description = in.Description
	}
	record.TransactionDate = in.TransactionDate
	record.Type = newType
	record.AccountID = account.ID

	if err := s.applyEffect(ctx, record); err != nil {
		return storage.CashFlow{}, err
	}
	if err := s.cashFlows.PutCashFlow(ctx, record); err != nil {
		return storage.CashFlow{}, fmt.Errorf("persist cash flow: %w", err)
	}
	return record, nil
}

// Delete reverses a cash flow's balance effect and removes it. Absent
// records report (false, nil).
func (s *CashFlowService) Delete(ctx context.Context, recordID string) (bool, error) {
	if s == nil || s.cashFlows == nil || s.balance == nil {
		return false, fmt.Errorf("cash flow service is not configured")
	}

	record, err := s.cashFlows.GetCashFlow(ctx, recordID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load cash flow: %w", err)
	}

	if err := s.reverseEffect(ctx, record); err != nil {
		return false, err
	}
	if err := s.cashFlows.DeleteCashFlow(ctx, record.ID); err != nil {
		return false, fmt.Errorf("delete cash flow: %w", err)
	}
	return true, nil
}

// DeleteAll reverses every cash flow's balance effect, then clears the records.
func (s *CashFlowService) DeleteAll(ctx context.Context) error {
	if s == nil || s.cashFlows == nil || s.balance == nil {
		return fmt.Errorf("cash flow service is not configured")
	}

	records, err := s.cashFlows.ListCashFlows(ctx)
	if err != nil {
		return fmt.Errorf("list cash flows: %w", err)
	}
	for _, record := range records {
		if err := s.reverseEffect(ctx, record); err != nil {
			return err
		}
	}
	if err := s.cashFlows.DeleteAllCashFlows(ctx); err != nil {
		return fmt.Errorf("clear cash flows: %w", err)
	}
	return nil
}

func (s *CashFlowService) applyEffect(ctx context.Context, record storage.CashFlow) error {
	var err error
	if record.Type == storage.TypeIncome {
		_, err = s.balance.Increase(ctx, record.AccountID, record.Amount)
	} else {
		_, err = s.balance.Decrease(ctx, record.AccountID, record.Amount)
	}
	if err != nil {
		return fmt.Errorf("apply cash flow effect: %w", err)
	}
	return nil
}

func (s *CashFlowService) reverseEffect(ctx context.Context, record storage.CashFlow) error {
	var err error
	if record.Type == storage.TypeIncome {
		_, err = s.balance.Decrease(ctx, record.AccountID, record.Amount)
	} else {
		_, err = s.balance.Increase(ctx, record.AccountID, record.Amount)
	}
	if err != nil {
		return fmt.Errorf("reverse cash flow effect: %w", err)
	}
	return nil
}
