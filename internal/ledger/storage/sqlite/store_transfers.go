package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

const transferColumns = "id, amount, description, transaction_date, source_account_id, target_account_id"

func scanTransfer(row interface{ Scan(...any) error }) (storage.Transfer, error) {
	var record storage.Transfer
	var amount string
	var transactionDate int64
	if err := row.Scan(&record.ID, &amount, &record.Description, &transactionDate, &record.SourceAccountID, &record.TargetAccountID); err != nil {
		return storage.Transfer{}, err
	}
	var err error
	if record.Amount, err = parseDecimal("amount", amount); err != nil {
		return storage.Transfer{}, err
	}
	record.TransactionDate = fromMillis(transactionDate)
	return record, nil
}

// GetTransfer returns one transfer record by id.
func (s *Store) GetTransfer(ctx context.Context, id string) (storage.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return storage.Transfer{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Transfer{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Transfer{}, fmt.Errorf("transfer id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+transferColumns+" FROM transfers WHERE id = ?", id)
	record, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Transfer{}, storage.ErrNotFound
		}
		return storage.Transfer{}, fmt.Errorf("get transfer: %w", err)
	}
	return record, nil
}

// ListTransfers returns every transfer record ordered by transaction date.
func (s *Store) ListTransfers(ctx context.Context) ([]storage.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+transferColumns+" FROM transfers ORDER BY transaction_date ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows)
}

// ListTransfersBySourceAccountName returns transfers sourced from the named account.
func (s *Store) ListTransfersBySourceAccountName(ctx context.Context, name string) ([]storage.Transfer, error) {
	return s.listTransfersByAccountName(ctx, name, "source_account_id")
}

// ListTransfersByTargetAccountName returns transfers targeting the named account.
func (s *Store) ListTransfersByTargetAccountName(ctx context.Context, name string) ([]storage.Transfer, error) {
	return s.listTransfersByAccountName(ctx, name, "target_account_id")
}

func (s *Store) listTransfersByAccountName(ctx context.Context, name, sideColumn string) ([]storage.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("account name is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT t.id, t.amount, t.description, t.transaction_date, t.source_account_id, t.target_account_id
  FROM transfers t
  JOIN accounts a ON a.id = t.`+sideColumn+`
 WHERE a.name = ?
 ORDER BY t.transaction_date ASC, t.id ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("list transfers by account name: %w", err)
	}
	defer rows.Close()
	return collectTransfers(rows)
}

func collectTransfers(rows *sql.Rows) ([]storage.Transfer, error) {
	var records []storage.Transfer
	for rows.Next() {
		record, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}
	return records, nil
}

// PutTransfer inserts or replaces one transfer record.
func (s *Store) PutTransfer(ctx context.Context, record storage.Transfer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("transfer id is required")
	}
	if strings.TrimSpace(record.SourceAccountID) == "" {
		return fmt.Errorf("source account id is required")
	}
	if strings.TrimSpace(record.TargetAccountID) == "" {
		return fmt.Errorf("target account id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO transfers (id, amount, description, transaction_date, source_account_id, target_account_id)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	amount = excluded.amount,
	description = excluded.description,
	transaction_date = excluded.transaction_date,
	source_account_id = excluded.source_account_id,
	target_account_id = excluded.target_account_id`,
		record.ID,
		record.Amount.String(),
		record.Description,
		toMillis(record.TransactionDate),
		record.SourceAccountID,
		record.TargetAccountID,
	)
	if err != nil {
		return fmt.Errorf("put transfer: %w", err)
	}
	return nil
}

// DeleteTransfer removes one transfer record by id.
func (s *Store) DeleteTransfer(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("transfer id is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM transfers WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

// DeleteAllTransfers removes every transfer record.
func (s *Store) DeleteAllTransfers(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM transfers"); err != nil {
		return fmt.Errorf("delete all transfers: %w", err)
	}
	return nil
}
