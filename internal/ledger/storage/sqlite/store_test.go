package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/ledger.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func putTestAccount(t *testing.T, store *Store, id, name string, balance int64, createdAt time.Time) storage.Account {
	t.Helper()
	account := storage.Account{
		ID:             id,
		Name:           name,
		InitialBalance: decimal.NewFromInt(balance),
		Balance:        decimal.NewFromInt(balance),
		CreatedAt:      createdAt,
	}
	if err := store.PutAccount(context.Background(), account); err != nil {
		t.Fatalf("put account %s: %v", id, err)
	}
	return account
}

func TestAccountRoundTrip(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)

	got, err := store.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Name != "Checking" {
		t.Fatalf("name = %q, want Checking", got.Name)
	}
	if !got.InitialBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("initial balance = %s, want 100", got.InitialBalance)
	}
	if !got.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance = %s, want 100", got.Balance)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, createdAt)
	}
}

func TestAccountUpdatePreservesCreatedAt(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	account := putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)

	account.Name = "Everyday"
	account.Balance = decimal.NewFromInt(175)
	account.CreatedAt = createdAt.Add(48 * time.Hour)
	if err := store.PutAccount(context.Background(), account); err != nil {
		t.Fatalf("update account: %v", err)
	}

	got, err := store.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Name != "Everyday" {
		t.Fatalf("name = %q, want Everyday", got.Name)
	}
	if !got.Balance.Equal(decimal.NewFromInt(175)) {
		t.Fatalf("balance = %s, want 175", got.Balance)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at = %v, want original %v", got.CreatedAt, createdAt)
	}
}

func TestGetAccountByNamePrefersOldest(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-2", "Shared", 50, base.Add(time.Hour))
	putTestAccount(t, store, "acc-1", "Shared", 100, base)

	got, err := store.GetAccountByName(context.Background(), "Shared")
	if err != nil {
		t.Fatalf("get account by name: %v", err)
	}
	if got.ID != "acc-1" {
		t.Fatalf("id = %q, want oldest acc-1", got.ID)
	}

	if _, err := store.GetAccountByName(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing name err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListAccountsOrdersByCreation(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-2", "Savings", 200, base.Add(time.Minute))
	putTestAccount(t, store, "acc-1", "Checking", 100, base)

	accounts, err := store.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("accounts len = %d, want 2", len(accounts))
	}
	if accounts[0].ID != "acc-1" || accounts[1].ID != "acc-2" {
		t.Fatalf("order = %s, %s, want acc-1, acc-2", accounts[0].ID, accounts[1].ID)
	}
}

func TestAccountDeleteAndNotFound(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)

	if err := store.DeleteAccount(context.Background(), "acc-1"); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := store.GetAccount(context.Background(), "acc-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted err = %v, want %v", err, storage.ErrNotFound)
	}
	// Deleting an absent row is not an error.
	if err := store.DeleteAccount(context.Background(), "acc-1"); err != nil {
		t.Fatalf("delete absent account: %v", err)
	}
}

func TestCashFlowRoundTrip(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)

	transactionDate := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	record := storage.CashFlow{
		ID:              "cf-1",
		Amount:          decimal.RequireFromString("19.99"),
		Description:     "groceries",
		TransactionDate: transactionDate,
		Type:            storage.TypeExpense,
		AccountID:       "acc-1",
	}
	if err := store.PutCashFlow(context.Background(), record); err != nil {
		t.Fatalf("put cash flow: %v", err)
	}

	got, err := store.GetCashFlow(context.Background(), "cf-1")
	if err != nil {
		t.Fatalf("get cash flow: %v", err)
	}
	if !got.Amount.Equal(record.Amount) {
		t.Fatalf("amount = %s, want %s", got.Amount, record.Amount)
	}
	if got.Description != "groceries" {
		t.Fatalf("description = %q, want groceries", got.Description)
	}
	if !got.TransactionDate.Equal(transactionDate) {
		t.Fatalf("transaction_date = %v, want %v", got.TransactionDate, transactionDate)
	}
	if got.Type != storage.TypeExpense {
		t.Fatalf("type = %q, want %q", got.Type, storage.TypeExpense)
	}
	if got.AccountID != "acc-1" {
		t.Fatalf("account_id = %q, want acc-1", got.AccountID)
	}

	if _, err := store.GetCashFlow(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing cash flow err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPutCashFlowRejectsTransferType(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)

	err := store.PutCashFlow(context.Background(), storage.CashFlow{
		ID:              "cf-1",
		Amount:          decimal.NewFromInt(10),
		TransactionDate: createdAt,
		Type:            storage.TypeTransfer,
		AccountID:       "acc-1",
	})
	if err == nil {
		t.Fatal("expected transfer type to be rejected")
	}
}

func TestListCashFlowsByAccountNameJoinsOwner(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)
	putTestAccount(t, store, "acc-2", "Savings", 100, createdAt)

	base := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	records := []storage.CashFlow{
		{ID: "cf-2", Amount: decimal.NewFromInt(20), TransactionDate: base.Add(24 * time.Hour), Type: storage.TypeIncome, AccountID: "acc-1"},
		{ID: "cf-1", Amount: decimal.NewFromInt(10), TransactionDate: base, Type: storage.TypeExpense, AccountID: "acc-1"},
		{ID: "cf-3", Amount: decimal.NewFromInt(30), TransactionDate: base, Type: storage.TypeIncome, AccountID: "acc-2"},
	}
	for _, record := range records {
		if err := store.PutCashFlow(context.Background(), record); err != nil {
			t.Fatalf("put cash flow %s: %v", record.ID, err)
		}
	}

	got, err := store.ListCashFlowsByAccountName(context.Background(), "Checking")
	if err != nil {
		t.Fatalf("list by account name: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records len = %d, want 2", len(got))
	}
	// Ordered by transaction date, so cf-1 comes first.
	if got[0].ID != "cf-1" || got[1].ID != "cf-2" {
		t.Fatalf("order = %s, %s, want cf-1, cf-2", got[0].ID, got[1].ID)
	}

	none, err := store.ListCashFlowsByAccountName(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("list unknown name: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("unknown name records len = %d, want 0", len(none))
	}
}

func TestDeleteAllCashFlows(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)

	for _, id := range []string{"cf-1", "cf-2"} {
		if err := store.PutCashFlow(context.Background(), storage.CashFlow{
			ID:              id,
			Amount:          decimal.NewFromInt(5),
			TransactionDate: createdAt,
			Type:            storage.TypeIncome,
			AccountID:       "acc-1",
		}); err != nil {
			t.Fatalf("put cash flow %s: %v", id, err)
		}
	}

	if err := store.DeleteAllCashFlows(context.Background()); err != nil {
		t.Fatalf("delete all cash flows: %v", err)
	}
	records, err := store.ListCashFlows(context.Background())
	if err != nil {
		t.Fatalf("list cash flows: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records len = %d, want 0", len(records))
	}
}

func TestTransferRoundTripAndNameScoping(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)
	putTestAccount(t, store, "acc-2", "Savings", 100, createdAt)

	transactionDate := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	record := storage.Transfer{
		ID:              "tr-1",
		Amount:          decimal.RequireFromString("250.50"),
		Description:     "monthly savings",
		TransactionDate: transactionDate,
		SourceAccountID: "acc-1",
		TargetAccountID: "acc-2",
	}
	if err := store.PutTransfer(context.Background(), record); err != nil {
		t.Fatalf("put transfer: %v", err)
	}

	got, err := store.GetTransfer(context.Background(), "tr-1")
	if err != nil {
		t.Fatalf("get transfer: %v", err)
	}
	if !got.Amount.Equal(record.Amount) {
		t.Fatalf("amount = %s, want %s", got.Amount, record.Amount)
	}
	if got.SourceAccountID != "acc-1" || got.TargetAccountID != "acc-2" {
		t.Fatalf("accounts = %s -> %s, want acc-1 -> acc-2", got.SourceAccountID, got.TargetAccountID)
	}
	if !got.TransactionDate.Equal(transactionDate) {
		t.Fatalf("transaction_date = %v, want %v", got.TransactionDate, transactionDate)
	}

	bySource, err := store.ListTransfersBySourceAccountName(context.Background(), "Checking")
	if err != nil {
		t.Fatalf("list by source name: %v", err)
	}
	if len(bySource) != 1 || bySource[0].ID != "tr-1" {
		t.Fatalf("by source = %v, want tr-1", bySource)
	}
	byTarget, err := store.ListTransfersByTargetAccountName(context.Background(), "Savings")
	if err != nil {
		t.Fatalf("list by target name: %v", err)
	}
	if len(byTarget) != 1 || byTarget[0].ID != "tr-1" {
		t.Fatalf("by target = %v, want tr-1", byTarget)
	}
	wrongSide, err := store.ListTransfersBySourceAccountName(context.Background(), "Savings")
	if err != nil {
		t.Fatalf("list wrong side: %v", err)
	}
	if len(wrongSide) != 0 {
		t.Fatalf("wrong side records len = %d, want 0", len(wrongSide))
	}

	if _, err := store.GetTransfer(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing transfer err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestTransferDeleteAndDeleteAll(t *testing.T) {
	store := openTestStore(t)

	createdAt := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	putTestAccount(t, store, "acc-1", "Checking", 100, createdAt)
	putTestAccount(t, store, "acc-2", "Savings", 100, createdAt)

	for _, id := range []string{"tr-1", "tr-2"} {
		if err := store.PutTransfer(context.Background(), storage.Transfer{
			ID:              id,
			Amount:          decimal.NewFromInt(10),
			TransactionDate: createdAt,
			SourceAccountID: "acc-1",
			TargetAccountID: "acc-2",
		}); err != nil {
			t.Fatalf("put transfer %s: %v", id, err)
		}
	}

	if err := store.DeleteTransfer(context.Background(), "tr-1"); err != nil {
		t.Fatalf("delete transfer: %v", err)
	}
	if _, err := store.GetTransfer(context.Background(), "tr-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted err = %v, want %v", err, storage.ErrNotFound)
	}

	if err := store.DeleteAllTransfers(context.Background()); err != nil {
		t.Fatalf("delete all transfers: %v", err)
	}
	records, err := store.ListTransfers(context.Background())
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records len = %d, want 0", len(records))
	}
}

func TestStoreRejectsCanceledContext(t *testing.T) {
	store := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetAccount(ctx, "acc-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("get with canceled ctx err = %v, want %v", err, context.Canceled)
	}
	if err := store.PutCashFlow(ctx, storage.CashFlow{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("put with canceled ctx err = %v, want %v", err, context.Canceled)
	}
}
