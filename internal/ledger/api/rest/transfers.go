package rest

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/service"
	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

type transferPayload struct {
	Amount          *decimal.Decimal `json:"amount"`
	Description     string           `json:"description"`
	TransactionDate string           `json:"transactionDate"`
	SourceAccountID string           `json:"sourceAccountId"`
	TargetAccountID string           `json:"targetAccountId"`
}

type transferResponse struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
	SourceAccountID string          `json:"sourceAccountId"`
	TargetAccountID string          `json:"targetAccountId"`
}

func toTransferResponse(record storage.Transfer) transferResponse {
	return transferResponse{
		ID:              record.ID,
		Amount:          record.Amount,
		Description:     record.Description,
		TransactionDate: formatDate(record.TransactionDate),
		SourceAccountID: record.SourceAccountID,
		TargetAccountID: record.TargetAccountID,
	}
}

func (h *Handler) transferInput(w http.ResponseWriter, r *http.Request) (service.TransferInput, bool) {
	var payload transferPayload
	if err := decodeBody(r, &payload); err != nil {
		h.writeInvalidInput(w, "request body must be valid JSON")
		return service.TransferInput{}, false
	}
	if payload.Amount == nil {
		h.writeInvalidInput(w, "amount is required")
		return service.TransferInput{}, false
	}
	if payload.TransactionDate == "" {
		h.writeInvalidInput(w, "transactionDate is required")
		return service.TransferInput{}, false
	}
	transactionDate, err := parseDate(payload.TransactionDate)
	if err != nil {
		h.writeInvalidInput(w, err.Error())
		return service.TransferInput{}, false
	}
	if payload.SourceAccountID == "" {
		h.writeInvalidInput(w, "sourceAccountId is required")
		return service.TransferInput{}, false
	}
	if payload.TargetAccountID == "" {
		h.writeInvalidInput(w, "targetAccountId is required")
		return service.TransferInput{}, false
	}

	return service.TransferInput{
		Amount:          *payload.Amount,
		Description:     payload.Description,
		TransactionDate: transactionDate,
		SourceAccountID: payload.SourceAccountID,
		TargetAccountID: payload.TargetAccountID,
	}, true
}

func (h *Handler) listTransfers(w http.ResponseWriter, r *http.Request) {
	var records []storage.Transfer
	var err error
	if name := r.URL.Query().Get("account"); name != "" {
		records, err = h.transfers.ListByAccountName(r.Context(), name)
	} else {
		records, err = h.transfers.List(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	responses := make([]transferResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toTransferResponse(record))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) createTransfer(w http.ResponseWriter, r *http.Request) {
	in, ok := h.transferInput(w, r)
	if !ok {
		return
	}

	record, err := h.transfers.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransferResponse(record))
}

func (h *Handler) getTransfer(w http.ResponseWriter, r *http.Request) {
	record, err := h.transfers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransferResponse(record))
}

func (h *Handler) updateTransfer(w http.ResponseWriter, r *http.Request) {
	in, ok := h.transferInput(w, r)
	if !ok {
		return
	}

	record, err := h.transfers.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransferResponse(record))
}

func (h *Handler) deleteTransfer(w http.ResponseWriter, r *http.Request) {
	found, err := h.transfers.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		h.writeNotFound(w, "transfer not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllTransfers(w http.ResponseWriter, r *http.Request) {
	if err := h.transfers.DeleteAll(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
