// Package storage defines persistence contracts for ledger state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates a requested ledger record is missing.
var ErrNotFound = errors.New("record not found")

// TransactionType labels the direction of a cash flow record.
type TransactionType string

const (
	// TypeIncome increases the owning account's balance.
	TypeIncome TransactionType = "INCOME"
	// TypeExpense decreases the owning account's balance.
	TypeExpense TransactionType = "EXPENSE"
	// TypeTransfer labels two-account movements. It is set internally and
	// never client-supplied.
	TypeTransfer TransactionType = "TRANSFER"
)

// Account stores one ledger account. Balance must always equal
// InitialBalance plus the signed effects of every live transaction that
// references the account.
type Account struct {
	ID             string
	Name           string
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	CreatedAt      time.Time
}

// CashFlow stores one single-account income or expense record.
type CashFlow struct {
	ID              string
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	Type            TransactionType
	AccountID       string
}

// Transfer stores one two-account movement: the source loses Amount, the
// target gains it.
type Transfer struct {
	ID              string
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	SourceAccountID string
	TargetAccountID string
}

// AccountStore persists ledger accounts.
type AccountStore interface {
	GetAccount(ctx context.Context, id string) (Account, error)
	GetAccountByName(ctx context.Context, name string) (Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	PutAccount(ctx context.Context, account Account) error
	DeleteAccount(ctx context.Context, id string) error
	DeleteAllAccounts(ctx context.Context) error
}

// CashFlowStore persists cash flow records.
type CashFlowStore interface {
	GetCashFlow(ctx context.Context, id string) (CashFlow, error)
	ListCashFlows(ctx context.Context) ([]CashFlow, error)
	ListCashFlowsByAccountName(ctx context.Context, name string) ([]CashFlow, error)
	PutCashFlow(ctx context.Context, record CashFlow) error
	DeleteCashFlow(ctx context.Context, id string) error
	DeleteAllCashFlows(ctx context.Context) error
}

// TransferStore persists transfer records.
type TransferStore interface {
	GetTransfer(ctx context.Context, id string) (Transfer, error)
	ListTransfers(ctx context.Context) ([]Transfer, error)
	ListTransfersBySourceAccountName(ctx context.Context, name string) ([]Transfer, error)
	ListTransfersByTargetAccountName(ctx context.Context, name string) ([]Transfer, error)
	PutTransfer(ctx context.Context, record Transfer) error
	DeleteTransfer(ctx context.Context, id string) error
	DeleteAllTransfers(ctx context.Context) error
}
