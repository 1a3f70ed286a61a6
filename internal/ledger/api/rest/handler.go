// Package rest exposes the ledger engines over a thin JSON HTTP surface.
package rest

import (
	"context"
	"log"
	"net/http"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/service"
	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

// AccountService is the account lifecycle surface the handler depends on.
type AccountService interface {
	Create(ctx context.Context, in service.AccountInput) (storage.Account, error)
	Get(ctx context.Context, accountID string) (storage.Account, error)
	List(ctx context.Context) ([]storage.Account, error)
	Update(ctx context.Context, accountID string, in service.UpdateAccountInput) (storage.Account, error)
	Delete(ctx context.Context, accountID string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// CashFlowService is the cash flow engine surface the handler depends on.
type CashFlowService interface {
	Create(ctx context.Context, in service.CashFlowInput) (storage.CashFlow, error)
	Get(ctx context.Context, recordID string) (storage.CashFlow, error)
	List(ctx context.Context) ([]storage.CashFlow, error)
	ListByAccountName(ctx context.Context, name string) ([]storage.CashFlow, error)
	Update(ctx context.Context, recordID string, in service.CashFlowInput) (storage.CashFlow, error)
	Delete(ctx context.Context, recordID string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// TransferService is the transfer engine surface the handler depends on.
type TransferService interface {
	Create(ctx context.Context, in service.TransferInput) (storage.Transfer, error)
	Get(ctx context.Context, recordID string) (storage.Transfer, error)
	List(ctx context.Context) ([]storage.Transfer, error)
	ListByAccountName(ctx context.Context, name string) ([]storage.Transfer, error)
	Update(ctx context.Context, recordID string, in service.TransferInput) (storage.Transfer, error)
	Delete(ctx context.Context, recordID string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// TransactionService is the aggregator surface the handler depends on.
type TransactionService interface {
	List(ctx context.Context) ([]service.Transaction, error)
	DeleteAll(ctx context.Context) error
}

// Handler routes ledger requests to the engines.
type Handler struct {
	accounts     AccountService
	cashFlows    CashFlowService
	transfers    TransferService
	transactions TransactionService
	logger       *log.Logger
}

// NewHandler creates a request handler over the four ledger engines.
func NewHandler(accounts AccountService, cashFlows CashFlowService, transfers TransferService, transactions TransactionService, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		accounts:     accounts,
		cashFlows:    cashFlows,
		transfers:    transfers,
		transactions: transactions,
		logger:       logger,
	}
}

// Router binds every endpoint under /api/v1 plus the health probe.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)

	mux.HandleFunc("GET /api/v1/accounts", h.listAccounts)
	mux.HandleFunc("POST /api/v1/accounts", h.createAccount)
	mux.HandleFunc("DELETE /api/v1/accounts", h.deleteAllAccounts)
	mux.HandleFunc("GET /api/v1/accounts/{id}", h.getAccount)
	mux.HandleFunc("PUT /api/v1/accounts/{id}", h.updateAccount)
	mux.HandleFunc("DELETE /api/v1/accounts/{id}", h.deleteAccount)

	mux.HandleFunc("GET /api/v1/cashflows", h.listCashFlows)
	mux.HandleFunc("POST /api/v1/cashflows", h.createCashFlow)
	mux.HandleFunc("DELETE /api/v1/cashflows", h.deleteAllCashFlows)
	mux.HandleFunc("GET /api/v1/cashflows/{id}", h.getCashFlow)
	mux.HandleFunc("PUT /api/v1/cashflows/{id}", h.updateCashFlow)
	mux.HandleFunc("DELETE /api/v1/cashflows/{id}", h.deleteCashFlow)

	mux.HandleFunc("GET /api/v1/transfers", h.listTransfers)
	mux.HandleFunc("POST /api/v1/transfers", h.createTransfer)
	mux.HandleFunc("DELETE /api/v1/transfers", h.deleteAllTransfers)
	mux.HandleFunc("GET /api/v1/transfers/{id}", h.getTransfer)
	mux.HandleFunc("PUT /api/v1/transfers/{id}", h.updateTransfer)
	mux.HandleFunc("DELETE /api/v1/transfers/{id}", h.deleteTransfer)

	mux.HandleFunc("GET /api/v1/transactions", h.listTransactions)
	mux.HandleFunc("DELETE /api/v1/transactions", h.deleteAllTransactions)

	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
