package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/PauloHenriqueGrancieri/finances/internal/platform/errors"
	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

// dateLayout is the wire format for transaction dates.
const dateLayout = "2006-01-02"

type errorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	// The status line is already written; an encode failure here only
	// truncates the body.
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain failures to response classes: coded errors carry
// their own status, the storage sentinel means the record is gone, and
// anything else is internal.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		status := domainErr.Code.HTTPStatus()
		if status == http.StatusInternalServerError {
			h.logger.Printf("request failed: %v", err)
		}
		writeJSON(w, status, errorResponse{
			Code:     string(domainErr.Code),
			Message:  domainErr.Message,
			Metadata: domainErr.Metadata,
		})
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:    string(apperrors.CodeNotFound),
			Message: "record not found",
		})
		return
	}
	h.logger.Printf("request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Code:    string(apperrors.CodeUnknown),
		Message: "internal error",
	})
}

func (h *Handler) writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Code:    string(apperrors.CodeNotFound),
		Message: message,
	})
}

func (h *Handler) writeInvalidInput(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    string(apperrors.CodeInvalidInput),
		Message: message,
	})
}

func decodeBody(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("transactionDate must be YYYY-MM-DD")
	}
	return parsed, nil
}

func formatDate(value time.Time) string {
	return value.Format(dateLayout)
}
