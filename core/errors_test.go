package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestLedgerErrorMapperSentinels(t *testing.T) {
	cases := []struct {
		err      error
		textCode string
		status   int
	}{
		{ErrAccountNotFound, LedgerErrorNotFound, http.StatusNotFound},
		{ErrEntryNotFound, LedgerErrorNotFound, http.StatusNotFound},
		{ErrBalanceFloorViolated, LedgerErrorInsufficientFunds, http.StatusConflict},
		{ErrUnsupportedCryptoAsset, LedgerErrorValidation, http.StatusBadRequest},
		{ErrInvalidAccountKind, LedgerErrorValidation, http.StatusBadRequest},
	}
	for _, tc := range cases {
		mapped := defaultErrorMapper(tc.err)
		if mapped == nil {
			t.Fatalf("%v: expected mapped error", tc.err)
		}
		if mapped.TextCode != tc.textCode {
			t.Fatalf("%v: expected %s, got %s", tc.err, tc.textCode, mapped.TextCode)
		}
		if mapped.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, mapped.Code)
		}
	}
}

func TestLedgerErrorMapperWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("store: lookup failed: %w", ErrAccountNotFound)
	mapped := defaultErrorMapper(wrapped)
	if mapped.TextCode != LedgerErrorNotFound {
		t.Fatalf("expected %s, got %s", LedgerErrorNotFound, mapped.TextCode)
	}
}

func TestLedgerErrorMapperPassthrough(t *testing.T) {
	original := newLedgerError("core: nope", goerrors.CategoryAuthz, LedgerErrorForbidden)
	mapped := defaultErrorMapper(original)
	if mapped != original {
		t.Fatal("expected categorized errors to pass through unchanged")
	}
	if mapped.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", mapped.Code)
	}
}

func TestLedgerErrorMapperMessageHeuristics(t *testing.T) {
	cases := []struct {
		message  string
		textCode string
	}{
		{"store: row not found", LedgerErrorNotFound},
		{"core: account does not belong to the caller", LedgerErrorForbidden},
		{"core: insufficient funds: balance 10, floor 0, debit 20", LedgerErrorInsufficientFunds},
		{"core: account \"111\" is frozen, not active", LedgerErrorAccountInactive},
		{"pq: deadlock detected", LedgerErrorConflictRetry},
		{"sqlite: database is locked", LedgerErrorConflictRetry},
		{"core: transfer reconciliation pending: boom", LedgerErrorReconciliationPending},
		{"core: destination_number is required", LedgerErrorValidation},
	}
	for _, tc := range cases {
		mapped := defaultErrorMapper(errors.New(tc.message))
		if mapped.TextCode != tc.textCode {
			t.Fatalf("%q: expected %s, got %s", tc.message, tc.textCode, mapped.TextCode)
		}
	}
}

func TestLedgerErrorMapperStorageFailure(t *testing.T) {
	tagged := fmt.Errorf("%w: pq: connection refused", ErrStorageFailure)
	mapped := defaultErrorMapper(tagged)
	if mapped.TextCode != LedgerErrorStorageFailure {
		t.Fatalf("expected %s, got %s", LedgerErrorStorageFailure, mapped.TextCode)
	}
	if mapped.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %v", mapped.Category)
	}
	if mapped.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", mapped.Code)
	}

	// Retryable driver faults keep their conflict mapping even when tagged.
	locked := fmt.Errorf("%w: sqlite: database is locked", ErrStorageFailure)
	if mapped := defaultErrorMapper(locked); mapped.TextCode != LedgerErrorConflictRetry {
		t.Fatalf("expected %s, got %s", LedgerErrorConflictRetry, mapped.TextCode)
	}
}

func TestEnsureLedgerErrorEnvelopeDefaults(t *testing.T) {
	err := ensureLedgerErrorEnvelope(goerrors.New("", goerrors.CategoryInternal))
	if err.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", err.Code)
	}
	if err.TextCode != LedgerErrorInternal {
		t.Fatalf("expected %s, got %s", LedgerErrorInternal, err.TextCode)
	}
	if err.Message == "" {
		t.Fatal("expected a fallback message for blank internal errors")
	}
}
