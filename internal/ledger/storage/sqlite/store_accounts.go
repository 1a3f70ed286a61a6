package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

const accountColumns = "id, name, initial_balance, balance, created_at"

func scanAccount(row interface{ Scan(...any) error }) (storage.Account, error) {
	var account storage.Account
	var initialBalance string
	var balance string
	var createdAt int64
	if err := row.Scan(&account.ID, &account.Name, &initialBalance, &balance, &createdAt); err != nil {
		return storage.Account{}, err
	}
	var err error
	if account.InitialBalance, err = parseDecimal("initial_balance", initialBalance); err != nil {
		return storage.Account{}, err
	}
	if account.Balance, err = parseDecimal("balance", balance); err != nil {
		return storage.Account{}, err
	}
	account.CreatedAt = fromMillis(createdAt)
	return account, nil
}

// GetAccount returns one account by id.
func (s *Store) GetAccount(ctx context.Context, id string) (storage.Account, error) {
	if err := ctx.Err(); err != nil {
		return storage.Account{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Account{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Account{}, fmt.Errorf("account id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Account{}, storage.ErrNotFound
		}
		return storage.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// GetAccountByName returns one account by name. When several accounts share
// a name the oldest one wins; names are unique in practice, not by contract.
func (s *Store) GetAccountByName(ctx context.Context, name string) (storage.Account, error) {
	if err := ctx.Err(); err != nil {
		return storage.Account{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Account{}, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.Account{}, fmt.Errorf("account name is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE name = ? ORDER BY created_at ASC LIMIT 1", name)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Account{}, storage.ErrNotFound
		}
		return storage.Account{}, fmt.Errorf("get account by name: %w", err)
	}
	return account, nil
}

// ListAccounts returns every account ordered by creation time.
func (s *Store) ListAccounts(ctx context.Context) ([]storage.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []storage.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// PutAccount inserts or replaces one account record.
func (s *Store) PutAccount(ctx context.Context, account storage.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(account.ID) == "" {
		return fmt.Errorf("account id is required")
	}
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("account name is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO accounts (id, name, initial_balance, balance, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	name = excluded.name,
	initial_balance = excluded.initial_balance,
	balance = excluded.balance`,
		account.ID,
		account.Name,
		account.InitialBalance.String(),
		account.Balance.String(),
		toMillis(account.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put account: %w", err)
	}
	return nil
}

// DeleteAccount removes one account by id.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("account id is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// DeleteAllAccounts removes every account record.
func (s *Store) DeleteAllAccounts(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM accounts"); err != nil {
		return fmt.Errorf("delete all accounts: %w", err)
	}
	return nil
}
