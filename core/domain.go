package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidAccountKind             = errors.New("core: invalid account kind")
	ErrInvalidAccountStatusTransition = errors.New("core: invalid account status transition")
	ErrInvalidEntryKind               = errors.New("core: invalid entry kind")
	ErrEntryTerminal                  = errors.New("core: entry already reached a terminal status")
	ErrInvalidEntryStatusTransition   = errors.New("core: invalid entry status transition")
	ErrAccountNotFound                = errors.New("core: account not found")
	ErrEntryNotFound                  = errors.New("core: ledger entry not found")
	ErrIdempotencyKeyAlreadyClaimed   = errors.New("core: idempotency key already claimed")
	ErrIdempotencyClaimNotFound       = errors.New("core: idempotency claim not found")
	ErrUnsupportedCryptoAsset         = errors.New("core: unsupported crypto asset")
	ErrBalanceFloorViolated           = errors.New("core: balance adjustment would violate the account floor")
	ErrStorageFailure                 = errors.New("core: storage failure")
)

type AccountKind string

const (
	AccountKindChecking AccountKind = "checking"
	AccountKindSavings  AccountKind = "savings"
	AccountKindCredit   AccountKind = "credit"
)

func (k AccountKind) Validate() error {
	switch k {
	case AccountKindChecking, AccountKindSavings, AccountKindCredit:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAccountKind, string(k))
	}
}

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusFrozen   AccountStatus = "frozen"
)

// Account is a named money container. Balance is carried in signed integer
// minor units; float representations are never used for value.
type Account struct {
	ID          string
	Number      string
	OwnerID     string
	Kind        AccountKind
	Balance     int64
	CreditLimit int64
	Status      AccountStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Floor returns the lowest balance the account may legally hold. Checking and
// savings accounts may never go negative; a credit account may go negative up
// to its credit limit.
func (a Account) Floor() int64 {
	if a.Kind == AccountKindCredit {
		return -a.CreditLimit
	}
	return 0
}

// CanDebit reports whether debiting amount would keep the balance at or above
// the account floor. The storage layer re-verifies the same predicate inside
// its atomic update; this check exists for early, race-free-at-best rejection.
func (a Account) CanDebit(amount int64) bool {
	if amount <= 0 {
		return false
	}
	return a.Balance-amount >= a.Floor()
}

func (a *Account) TransitionTo(status AccountStatus, now time.Time) error {
	if a == nil {
		return nil
	}
	if a.Status == status {
		a.UpdatedAt = now
		return nil
	}
	if !accountTransitionAllowed(a.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidAccountStatusTransition, a.Status, status)
	}
	a.Status = status
	a.UpdatedAt = now
	return nil
}

func accountTransitionAllowed(current, next AccountStatus) bool {
	allowed := map[AccountStatus]map[AccountStatus]struct{}{
		AccountStatusActive: {
			AccountStatusInactive: {},
			AccountStatusFrozen:   {},
		},
		AccountStatusInactive: {
			AccountStatusActive: {},
		},
		AccountStatusFrozen: {
			AccountStatusActive:   {},
			AccountStatusInactive: {},
		},
	}
	_, ok := allowed[current][next]
	return ok
}

type EntryKind string

const (
	EntryKindDeposit    EntryKind = "deposit"
	EntryKindWithdrawal EntryKind = "withdrawal"
	EntryKindTransfer   EntryKind = "transfer"
	EntryKindPayment    EntryKind = "payment"
	EntryKindCrypto     EntryKind = "crypto"
)

func (k EntryKind) Validate() error {
	switch k {
	case EntryKindDeposit, EntryKindWithdrawal, EntryKindTransfer, EntryKindPayment, EntryKindCrypto:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEntryKind, string(k))
	}
}

// Outgoing reports whether entries of this kind move value out of the source
// account. Used by spend aggregations.
func (k EntryKind) Outgoing() bool {
	switch k {
	case EntryKindWithdrawal, EntryKindTransfer, EntryKindPayment, EntryKindCrypto:
		return true
	default:
		return false
	}
}

type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusFailed    EntryStatus = "failed"
	// EntryStatusReconciliationPending marks an internal transfer whose debit
	// was durably applied but whose credit and compensating reversal both
	// failed. The reconciliation runner owns entries in this state.
	EntryStatusReconciliationPending EntryStatus = "reconciliation_pending"
)

func (s EntryStatus) Terminal() bool {
	return s == EntryStatusCompleted || s == EntryStatusFailed
}

// Entry is one immutable record of a value movement. Once it reaches a
// terminal status it is never updated or deleted.
type Entry struct {
	ID          string
	OwnerID     string
	AccountID   string
	Kind        EntryKind
	Amount      int64
	Description string
	Status      EntryStatus

	// Fiat transfer metadata. RecipientNumber is recorded by value, not as a
	// live reference; for external transfers it is advisory only.
	RecipientNumber string
	RecipientName   string

	// Internal transfer cross-reference to the credited account.
	CounterpartyAccountID string

	// Crypto transfer metadata. The entry records blockchain-style metadata
	// without broadcasting anything to a network.
	AssetSymbol      string
	RecipientAddress string
	NetworkFee       int64
	Network          string

	CreatedAt time.Time
}

func (e *Entry) TransitionTo(status EntryStatus) error {
	if e == nil {
		return nil
	}
	if e.Status == status {
		return nil
	}
	if e.Status.Terminal() {
		return fmt.Errorf("%w: %s -> %s", ErrEntryTerminal, e.Status, status)
	}
	if !entryTransitionAllowed(e.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidEntryStatusTransition, e.Status, status)
	}
	e.Status = status
	return nil
}

func entryTransitionAllowed(current, next EntryStatus) bool {
	allowed := map[EntryStatus]map[EntryStatus]struct{}{
		EntryStatusPending: {
			EntryStatusCompleted:             {},
			EntryStatusFailed:                {},
			EntryStatusReconciliationPending: {},
		},
		EntryStatusReconciliationPending: {
			EntryStatusCompleted: {},
			EntryStatusFailed:    {},
		},
	}
	_, ok := allowed[current][next]
	return ok
}

// NormalizeDescription trims the free-text description and caps it so a single
// request cannot bloat the log.
func NormalizeDescription(description string) string {
	const maxDescriptionLen = 280
	trimmed := strings.TrimSpace(description)
	if len(trimmed) > maxDescriptionLen {
		trimmed = trimmed[:maxDescriptionLen]
	}
	return trimmed
}
