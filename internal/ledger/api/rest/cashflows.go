package rest

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/service"
	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

type cashFlowPayload struct {
	Amount          *decimal.Decimal `json:"amount"`
	Description     string           `json:"description"`
	TransactionDate string           `json:"transactionDate"`
	TransactionType string           `json:"transactionType"`
	AccountID       string           `json:"accountId"`
}

type cashFlowResponse struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
	TransactionType string          `json:"transactionType"`
	AccountID       string          `json:"accountId"`
}

func toCashFlowResponse(record storage.CashFlow) cashFlowResponse {
	return cashFlowResponse{
		ID:              record.ID,
		Amount:          record.Amount,
		Description:     record.Description,
		TransactionDate: formatDate(record.TransactionDate),
		TransactionType: string(record.Type),
		AccountID:       record.AccountID,
	}
}

// cashFlowInput validates the shared payload shape of create and update.
func (h *Handler) cashFlowInput(w http.ResponseWriter, r *http.Request) (service.CashFlowInput, bool) {
	var payload cashFlowPayload
	if err := decodeBody(r, &payload); err != nil {
		h.writeInvalidInput(w, "request body must be valid JSON")
		return service.CashFlowInput{}, false
	}
	if payload.Amount == nil {
		h.writeInvalidInput(w, "amount is required")
		return service.CashFlowInput{}, false
	}
	if payload.TransactionDate == "" {
		h.writeInvalidInput(w, "transactionDate is required")
		return service.CashFlowInput{}, false
	}
	transactionDate, err := parseDate(payload.TransactionDate)
	if err != nil {
		h.writeInvalidInput(w, err.Error())
		return service.CashFlowInput{}, false
	}
	if payload.AccountID == "" {
		h.writeInvalidInput(w, "accountId is required")
		return service.CashFlowInput{}, false
	}

	return service.CashFlowInput{
		Amount:          *payload.Amount,
		Description:     payload.Description,
		TransactionDate: transactionDate,
		Type:            storage.TransactionType(payload.TransactionType),
		AccountID:       payload.AccountID,
	}, true
}

func (h *Handler) listCashFlows(w http.ResponseWriter, r *http.Request) {
	var records []storage.CashFlow
	var err error
	if name := r.URL.Query().Get("account"); name != "" {
		records, err = h.cashFlows.ListByAccountName(r.Context(), name)
	} else {
		records, err = h.cashFlows.List(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	responses := make([]cashFlowResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toCashFlowResponse(record))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) createCashFlow(w http.ResponseWriter, r *http.Request) {
	in, ok := h.cashFlowInput(w, r)
	if !ok {
		return
	}
	if in.Type == "" {
		h.writeInvalidInput(w, "transactionType is required")
		return
	}

	record, err := h.cashFlows.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCashFlowResponse(record))
}

func (h *Handler) getCashFlow(w http.ResponseWriter, r *http.Request) {
	record, err := h.cashFlows.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCashFlowResponse(record))
}

func (h *Handler) updateCashFlow(w http.ResponseWriter, r *http.Request) {
	// Type stays optional on update; an empty value keeps the stored one.
	in, ok := h.cashFlowInput(w, r)
	if !ok {
		return
	}

	record, err := h.cashFlows.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCashFlowResponse(record))
}

func (h *Handler) deleteCashFlow(w http.ResponseWriter, r *http.Request) {
	found, err := h.cashFlows.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		h.writeNotFound(w, "cash flow not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllCashFlows(w http.ResponseWriter, r *http.Request) {
	if err := h.cashFlows.DeleteAll(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
