package rest

import (
	"net/http"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/service"
)

type transactionResponse struct {
	Kind     string            `json:"kind"`
	CashFlow *cashFlowResponse `json:"cashFlow,omitempty"`
	Transfer *transferResponse `json:"transfer,omitempty"`
}

func toTransactionResponse(transaction service.Transaction) transactionResponse {
	response := transactionResponse{Kind: string(transaction.Kind)}
	if transaction.CashFlow != nil {
		record := toCashFlowResponse(*transaction.CashFlow)
		response.CashFlow = &record
	}
	if transaction.Transfer != nil {
		record := toTransferResponse(*transaction.Transfer)
		response.Transfer = &record
	}
	return response
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	responses := make([]transactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, toTransactionResponse(transaction))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) deleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	if err := h.transactions.DeleteAll(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
