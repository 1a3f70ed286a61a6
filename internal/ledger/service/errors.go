package service

import (
	apperrors "github.com/PauloHenriqueGrancieri/finances/internal/platform/errors"
	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/storage"
)

func errAccountNotFoundByID(id string) error {
	return apperrors.WithMetadata(
		apperrors.CodeAccountReferenceInvalid,
		"account not found with id: "+id,
		map[string]string{"account_id": id},
	)
}

func errAccountNotFoundByName(name string) error {
	return apperrors.WithMetadata(
		apperrors.CodeAccountReferenceInvalid,
		"account not found with name: "+name,
		map[string]string{"account_name": name},
	)
}

func errSourceAccountNotFound(id string) error {
	return apperrors.WithMetadata(
		apperrors.CodeAccountReferenceInvalid,
		"source account not found with id: "+id,
		map[string]string{"account_id": id},
	)
}

func errTargetAccountNotFound(id string) error {
	return apperrors.WithMetadata(
		apperrors.CodeAccountReferenceInvalid,
		"target account not found with id: "+id,
		map[string]string{"account_id": id},
	)
}

func errInvalidCashFlowType(value storage.TransactionType) error {
	return apperrors.WithMetadata(
		apperrors.CodeTransactionTypeInvalid,
		"transaction type must be INCOME or EXPENSE, got: "+string(value),
		map[string]string{"transaction_type": string(value)},
	)
}
