package rest

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/service"
	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

type accountPayload struct {
	Name           string           `json:"name"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
}

type accountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      string          `json:"createdAt"`
}

func toAccountResponse(account storage.Account) accountResponse {
	return accountResponse{
		ID:             account.ID,
		Name:           account.Name,
		InitialBalance: account.InitialBalance,
		Balance:        account.Balance,
		CreatedAt:      account.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	responses := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var payload accountPayload
	if err := decodeBody(r, &payload); err != nil {
		h.writeInvalidInput(w, "request body must be valid JSON")
		return
	}
	if payload.Name == "" {
		h.writeInvalidInput(w, "name is required")
		return
	}
	if payload.InitialBalance == nil {
		h.writeInvalidInput(w, "initialBalance is required")
		return
	}

	account, err := h.accounts.Create(r.Context(), service.AccountInput{
		Name:           payload.Name,
		InitialBalance: *payload.InitialBalance,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	var payload accountPayload
	if err := decodeBody(r, &payload); err != nil {
		h.writeInvalidInput(w, "request body must be valid JSON")
		return
	}

	account, err := h.accounts.Update(r.Context(), r.PathValue("id"), service.UpdateAccountInput{
		Name:           payload.Name,
		InitialBalance: payload.InitialBalance,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	found, err := h.accounts.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		h.writeNotFound(w, "account not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllAccounts(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAll(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
