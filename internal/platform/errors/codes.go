// Package errors provides structured error handling for ledger operations.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound indicates the primary entity of an operation is missing.
	CodeNotFound Code = "NOT_FOUND"

	// CodeAccountReferenceInvalid indicates a referenced account (by id or
	// name) does not exist in the store.
	CodeAccountReferenceInvalid Code = "ACCOUNT_REFERENCE_INVALID"

	// CodeInvalidInput indicates a required request field or payload is
	// absent or malformed.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeTransactionTypeInvalid indicates a cash flow type outside
	// INCOME/EXPENSE.
	CodeTransactionTypeInvalid Code = "TRANSACTION_TYPE_INVALID"
)

// HTTPStatus maps domain codes to HTTP response status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound

	// Unprocessable entity - the request parsed but references a missing
	// secondary entity.
	case CodeAccountReferenceInvalid:
		return http.StatusUnprocessableEntity

	case CodeInvalidInput,
		CodeTransactionTypeInvalid:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
