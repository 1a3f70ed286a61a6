package service

import (
	"context"
	"fmt"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

// TransactionKind discriminates the variants of the Transaction union.
type TransactionKind string

const (
	// KindCashFlow marks a single-account income/expense record.
	KindCashFlow TransactionKind = "CASH_FLOW"
	// KindTransfer marks a two-account movement.
	KindTransfer TransactionKind = "TRANSFER"
)

// Transaction is a tagged union over cash flow and transfer records. The
// two variants share only their common field set, not behavior, so exactly
// one of CashFlow/Transfer is set, selected by Kind.
type Transaction struct {
	Kind     TransactionKind
	CashFlow *storage.CashFlow
	Transfer *storage.Transfer
}

// TransactionService is a read-only union view over the cash flow and
// transfer engines, plus bulk deletion across both.
type TransactionService struct {
	cashFlows *CashFlowService
	transfers *TransferService
}

// NewTransactionService creates an aggregator over both engines.
func NewTransactionService(cashFlows *CashFlowService, transfers *TransferService) *TransactionService {
	return &TransactionService{
		cashFlows: cashFlows,
		transfers: transfers,
	}
}

// List returns every transaction: cash flows first, then transfers, with no
// cross-type sort.
func (s *TransactionService) List(ctx context.Context) ([]Transaction, error) {
	if s == nil || s.cashFlows == nil || s.transfers == nil {
		return nil, fmt.Errorf("transaction service is not configured")
	}

	cashFlows, err := s.cashFlows.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cash flows: %w", err)
	}
	transfers, err := s.transfers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	transactions := make([]Transaction, 0, len(cashFlows)+len(transfers))
	for i := range cashFlows {
		transactions = append(transactions, Transaction{Kind: KindCashFlow, CashFlow: &cashFlows[i]})
	}
	for i := range transfers {
		transactions = append(transactions, Transaction{Kind: KindTransfer, Transfer: &transfers[i]})
	}
	return transactions, nil
}

// DeleteAll removes every transaction by delegating to both engines' bulk
// deletes, cash flows first, so each engine's reversal logic runs exactly
// once per record.
func (s *TransactionService) DeleteAll(ctx context.Context) error {
	if s == nil || s.cashFlows == nil || s.transfers == nil {
		return fmt.Errorf("transaction service is not configured")
	}

	if err := s.cashFlows.DeleteAll(ctx); err != nil {
		return err
	}
	return s.transfers.DeleteAll(ctx)
}
