// Package service implements the ledger's balance-consistency engines.
//
// Every mutation of an account balance routes through BalanceAdjuster so
// each engine's apply/reversal math stays centrally auditable. The
// invariant the engines maintain together: an account's balance always
// equals its initial balance plus the signed effects of every currently
// stored transaction that references it.
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

// BalanceAdjuster is the only code path permitted to mutate an account's
// balance. Increase and Decrease each load the current balance, apply the
// signed delta and persist the account. Neither call is idempotent; callers
// apply exactly one call per logical event.
type BalanceAdjuster struct {
	accounts storage.AccountStore
}

// NewBalanceAdjuster creates an adjuster over account storage.
func NewBalanceAdjuster(accounts storage.AccountStore) *BalanceAdjuster {
	return &BalanceAdjuster{accounts: accounts}
}

// Increase adds amount to the account's balance and returns the persisted account.
func (b *BalanceAdjuster) Increase(ctx context.Context, accountID string, amount decimal.Decimal) (storage.Account, error) {
	return b.apply(ctx, accountID, amount)
}

// Decrease subtracts amount from the account's balance and returns the persisted account.
func (b *BalanceAdjuster) Decrease(ctx context.Context, accountID string, amount decimal.Decimal) (storage.Account, error) {
	return b.apply(ctx, accountID, amount.Neg())
}

func (b *BalanceAdjuster) apply(ctx context.Context, accountID string, delta decimal.Decimal) (storage.Account, error) {
	if b == nil || b.accounts == nil {
		return storage.Account{}, fmt.Errorf("account store is not configured")
	}
	account, err := b.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return storage.Account{}, fmt.Errorf("load account %s: %w", accountID, err)
	}
	account.Balance = account.Balance.Add(delta)
	if err := b.accounts.PutAccount(ctx, account); err != nil {
		return storage.Account{}, fmt.Errorf("persist account %s: %w", accountID, err)
	}
	return account, nil
}
