package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

// memStore is an in-memory implementation of the three ledger store
// contracts with insertion-ordered listings.
type memStore struct {
	accounts      map[string]storage.Account
	accountOrder  []string
	cashFlows     map[string]storage.CashFlow
	cashFlowOrder []string
	transfers     map[string]storage.Transfer
	transferOrder []string
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  make(map[string]storage.Account),
		cashFlows: make(map[string]storage.CashFlow),
		transfers: make(map[string]storage.Transfer),
	}
}

func (m *memStore) GetAccount(_ context.Context, id string) (storage.Account, error) {
	account, ok := m.accounts[id]
	if !ok {
		return storage.Account{}, storage.ErrNotFound
	}
	return account, nil
}

func (m *memStore) GetAccountByName(_ context.Context, name string) (storage.Account, error) {
	for _, id := range m.accountOrder {
		if account, ok := m.accounts[id]; ok && account.Name == name {
			return account, nil
		}
	}
	return storage.Account{}, storage.ErrNotFound
}

func (m *memStore) ListAccounts(_ context.Context) ([]storage.Account, error) {
	var accounts []storage.Account
	for _, id := range m.accountOrder {
		if account, ok := m.accounts[id]; ok {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (m *memStore) PutAccount(_ context.Context, account storage.Account) error {
	if _, ok := m.accounts[account.ID]; !ok {
		m.accountOrder = append(m.accountOrder, account.ID)
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *memStore) DeleteAccount(_ context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *memStore) DeleteAllAccounts(_ context.Context) error {
	m.accounts = make(map[string]storage.Account)
	m.accountOrder = nil
	return nil
}

func (m *memStore) GetCashFlow(_ context.Context, id string) (storage.CashFlow, error) {
	record, ok := m.cashFlows[id]
	if !ok {
		return storage.CashFlow{}, storage.ErrNotFound
	}
	return record, nil
}

func (m *memStore) ListCashFlows(_ context.Context) ([]storage.CashFlow, error) {
	var records []storage.CashFlow
	for _, id := range m.cashFlowOrder {
		if record, ok := m.cashFlows[id]; ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *memStore) ListCashFlowsByAccountName(ctx context.Context, name string) ([]storage.CashFlow, error) {
	var records []storage.CashFlow
	for _, id := range m.cashFlowOrder {
		record, ok := m.cashFlows[id]
		if !ok {
			continue
		}
		if account, ok := m.accounts[record.AccountID]; ok && account.Name == name {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *memStore) PutCashFlow(_ context.Context, record storage.CashFlow) error {
	if _, ok := m.cashFlows[record.ID]; !ok {
		m.cashFlowOrder = append(m.cashFlowOrder, record.ID)
	}
	m.cashFlows[record.ID] = record
	return nil
}

func (m *memStore) DeleteCashFlow(_ context.Context, id string) error {
	delete(m.cashFlows, id)
	return nil
}

func (m *memStore) DeleteAllCashFlows(_ context.Context) error {
	m.cashFlows = make(map[string]storage.CashFlow)
	m.cashFlowOrder = nil
	return nil
}

func (m *memStore) GetTransfer(_ context.Context, id string) (storage.Transfer, error) {
	record, ok := m.transfers[id]
	if !ok {
		return storage.Transfer{}, storage.ErrNotFound
	}
	return record, nil
}

func (m *memStore) ListTransfers(_ context.Context) ([]storage.Transfer, error) {
	var records []storage.Transfer
	for _, id := range m.transferOrder {
		if record, ok := m.transfers[id]; ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *memStore) ListTransfersBySourceAccountName(_ context.Context, name string) ([]storage.Transfer, error) {
	return m.listTransfersBySide(name, true)
}

func (m *memStore) ListTransfersByTargetAccountName(_ context.Context, name string) ([]storage.Transfer, error) {
	return m.listTransfersBySide(name, false)
}

func (m *memStore) listTransfersBySide(name string, source bool) ([]storage.Transfer, error) {
	var records []storage.Transfer
	for _, id := range m.transferOrder {
		record, ok := m.transfers[id]
		if !ok {
			continue
		}
		sideID := record.TargetAccountID
		if source {
			sideID = record.SourceAccountID
		}
		if account, ok := m.accounts[sideID]; ok && account.Name == name {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *memStore) PutTransfer(_ context.Context, record storage.Transfer) error {
	if _, ok := m.transfers[record.ID]; !ok {
		m.transferOrder = append(m.transferOrder, record.ID)
	}
	m.transfers[record.ID] = record
	return nil
}

func (m *memStore) DeleteTransfer(_ context.Context, id string) error {
	delete(m.transfers, id)
	return nil
}

func (m *memStore) DeleteAllTransfers(_ context.Context) error {
	m.transfers = make(map[string]storage.Transfer)
	m.transferOrder = nil
	return nil
}

var (
	_ storage.AccountStore  = (*memStore)(nil)
	_ storage.CashFlowStore = (*memStore)(nil)
	_ storage.TransferStore = (*memStore)(nil)
)

// ledgerFixture wires every engine over one shared in-memory store.
type ledgerFixture struct {
	store     *memStore
	balance   *BalanceAdjuster
	accounts  *AccountService
	cashFlows *CashFlowService
	transfers *TransferService
	union     *TransactionService
}

func newLedgerFixture() *ledgerFixture {
	store := newMemStore()
	balance := NewBalanceAdjuster(store)
	cashFlows := NewCashFlowService(store, store, balance)
	transfers := NewTransferService(store, store, balance)
	return &ledgerFixture{
		store:     store,
		balance:   balance,
		accounts:  NewAccountService(store, store, store, balance),
		cashFlows: cashFlows,
		transfers: transfers,
		union:     NewTransactionService(cashFlows, transfers),
	}
}

func (f *ledgerFixture) mustCreateAccount(ctx context.Context, name string, initial int64) storage.Account {
	account, err := f.accounts.Create(ctx, AccountInput{
		Name:           name,
		InitialBalance: decimal.NewFromInt(initial),
	})
	if err != nil {
		panic(err)
	}
	return account
}

func dec(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
