package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

const cashFlowColumns = "id, amount, description, transaction_date, transaction_type, account_id"

func scanCashFlow(row interface{ Scan(...any) error }) (storage.CashFlow, error) {
	var record storage.CashFlow
	var amount string
	var transactionDate int64
	var transactionType string
	if err := row.Scan(&record.ID, &amount, &record.Description, &transactionDate, &transactionType, &record.AccountID); err != nil {
		return storage.CashFlow{}, err
	}
	var err error
	if record.Amount, err = parseDecimal("amount", amount); err != nil {
		return storage.CashFlow{}, err
	}
	record.TransactionDate = fromMillis(transactionDate)
	record.Type = storage.TransactionType(transactionType)
	return record, nil
}

// GetCashFlow returns one cash flow record by id.
func (s *Store) GetCashFlow(ctx context.Context, id string) (storage.CashFlow, error) {
	if err := ctx.Err(); err != nil {
		return storage.CashFlow{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.CashFlow{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.CashFlow{}, fmt.Errorf("cash flow id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+cashFlowColumns+" FROM cash_flows WHERE id = ?", id)
	record, err := scanCashFlow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CashFlow{}, storage.ErrNotFound
		}
		return storage.CashFlow{}, fmt.Errorf("get cash flow: %w", err)
	}
	return record, nil
}

// ListCashFlows returns every cash flow record ordered by transaction date.
func (s *Store) ListCashFlows(ctx context.Context) ([]storage.CashFlow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+cashFlowColumns+" FROM cash_flows ORDER BY transaction_date ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list cash flows: %w", err)
	}
	defer rows.Close()
	return collectCashFlows(rows)
}

// ListCashFlowsByAccountName returns the cash flows owned by the named account.
func (s *Store) ListCashFlowsByAccountName(ctx context.Context, name string) ([]storage.CashFlow, error) {
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
SELECT cf.id, cf.amount, cf.description, cf.transaction_date, cf.transaction_type, cf.account_id
  FROM cash_flows cf
  JOIN accounts a ON a.id = cf.account_id
 WHERE a.name = ?
 ORDER BY cf.transaction_date ASC, cf.id ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("list cash flows by account name: %w", err)
	}
	defer rows.Close()
	return collectCashFlows(rows)
}

func collectCashFlows(rows *sql.Rows) ([]storage.CashFlow, error) {
	var records []storage.CashFlow
	for rows.Next() {
		record, err := scanCashFlow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash flow: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cash flows: %w", err)
	}
	return records, nil
}

// PutCashFlow inserts or replaces one cash flow record.
func (s *Store) PutCashFlow(ctx context.Context, record storage.CashFlow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("cash flow id is required")
	}
	if strings.TrimSpace(record.AccountID) == "" {
		return fmt.Errorf("account id is required")
	}
	if record.Type != storage.TypeIncome && record.Type != storage.TypeExpense {
		return fmt.Errorf("transaction type %q is not a cash flow type", record.Type)
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO cash_flows (id, amount, description, transaction_date, transaction_type, account_id)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	amount = excluded.amount,
	description = excluded.description,
	transaction_date = excluded.transaction_date,
	transaction_type = excluded.transaction_type,
	account_id = excluded.account_id`,
		record.ID,
		record.Amount.String(),
		record.Description,
		toMillis(record.TransactionDate),
		string(record.Type),
		record.AccountID,
	)
	if err != nil {
		return fmt.Errorf("put cash flow: %w", err)
	}
	return nil
}

// DeleteCashFlow removes one cash flow record by id.
func (s *Store) DeleteCashFlow(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("cash flow id is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM cash_flows WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete cash flow: %w", err)
	}
	return nil
}

// DeleteAllCashFlows removes every cash flow record.
func (s *Store) DeleteAllCashFlows(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM cash_flows"); err != nil {
		return fmt.Errorf("delete all cash flows: %w", err)
	}
	return nil
}
