package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	LedgerErrorNotFound              = "LEDGER_NOT_FOUND"
	LedgerErrorForbidden             = "LEDGER_FORBIDDEN"
	LedgerErrorValidation            = "LEDGER_VALIDATION"
	LedgerErrorInsufficientFunds     = "LEDGER_INSUFFICIENT_FUNDS"
	LedgerErrorAccountInactive       = "LEDGER_ACCOUNT_INACTIVE"
	LedgerErrorConflictRetry         = "LEDGER_CONFLICT_RETRY"
	LedgerErrorReconciliationPending = "LEDGER_RECONCILIATION_PENDING"
	LedgerErrorStorageFailure        = "LEDGER_STORAGE_FAILURE"
	LedgerErrorInternal              = "LEDGER_INTERNAL_ERROR"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

func defaultErrorMapper(err error) *goerrors.Error {
	return ledgerErrorMapper(err)
}

func ledgerErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureLedgerErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrEntryNotFound):
		return newLedgerError(err.Error(), goerrors.CategoryNotFound, LedgerErrorNotFound)
	case errors.Is(err, ErrBalanceFloorViolated):
		return newLedgerError(err.Error(), goerrors.CategoryConflict, LedgerErrorInsufficientFunds)
	case errors.Is(err, ErrUnsupportedCryptoAsset),
		errors.Is(err, ErrInvalidAccountKind),
		errors.Is(err, ErrInvalidEntryKind):
		return newLedgerError(err.Error(), goerrors.CategoryBadInput, LedgerErrorValidation)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "not found"):
		return newLedgerError(err.Error(), goerrors.CategoryNotFound, LedgerErrorNotFound)
	case strings.Contains(msg, "does not belong"), strings.Contains(msg, "ownership"):
		return newLedgerError(err.Error(), goerrors.CategoryAuthz, LedgerErrorForbidden)
	case strings.Contains(msg, "insufficient funds"), strings.Contains(msg, "account floor"):
		return newLedgerError(err.Error(), goerrors.CategoryConflict, LedgerErrorInsufficientFunds)
	case strings.Contains(msg, "not active"), strings.Contains(msg, "frozen"), strings.Contains(msg, "inactive"):
		return newLedgerError(err.Error(), goerrors.CategoryOperation, LedgerErrorAccountInactive)
	case strings.Contains(msg, "serialization"), strings.Contains(msg, "deadlock"), strings.Contains(msg, "database is locked"):
		return newLedgerError(err.Error(), goerrors.CategoryConflict, LedgerErrorConflictRetry)
	case strings.Contains(msg, "reconciliation pending"):
		return newLedgerError(err.Error(), goerrors.CategoryConflict, LedgerErrorReconciliationPending)
	case errors.Is(err, ErrStorageFailure):
		return newLedgerError(err.Error(), goerrors.CategoryExternal, LedgerErrorStorageFailure)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "must be"), strings.Contains(msg, "must not"):
		return newLedgerError(err.Error(), goerrors.CategoryBadInput, LedgerErrorValidation)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureLedgerErrorEnvelope(mapped)
}

func newLedgerError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureLedgerErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureLedgerErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = ledgerHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultLedgerTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultLedgerTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return LedgerErrorValidation
	case goerrors.CategoryNotFound:
		return LedgerErrorNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return LedgerErrorForbidden
	case goerrors.CategoryConflict:
		return LedgerErrorConflictRetry
	case goerrors.CategoryOperation:
		return LedgerErrorAccountInactive
	case goerrors.CategoryExternal:
		return LedgerErrorStorageFailure
	default:
		return LedgerErrorInternal
	}
}

func ledgerHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
