package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type CreateAccountInput struct {
	OwnerID        string
	Kind           AccountKind
	Number         string
	InitialBalance int64
	CreditLimit    int64
	Status         AccountStatus
}

// AccountStore is the durable record of accounts and their balances.
type AccountStore interface {
	Create(ctx context.Context, in CreateAccountInput) (Account, error)
	Get(ctx context.Context, id string) (Account, error)
	GetByNumber(ctx context.Context, number string) (Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Account, error)

	// AdjustBalance applies a signed delta as a single conditional atomic
	// update: the floor predicate (and active status, for debits) is checked
	// in the same serialization point as the write. Two concurrent calls on
	// the same account must not produce a lost update. Returns the new
	// balance, ErrBalanceFloorViolated when the guard rejects the delta, or
	// ErrAccountNotFound.
	AdjustBalance(ctx context.Context, id string, delta int64) (int64, error)

	UpdateStatus(ctx context.Context, id string, status AccountStatus) error
}

type TimeWindow struct {
	From time.Time
	To   time.Time
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// MonthWindow returns the calendar-month window containing t, in t's location.
func MonthWindow(t time.Time) TimeWindow {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return TimeWindow{From: from, To: from.AddDate(0, 1, 0)}
}

type AppendEntryInput struct {
	OwnerID               string
	AccountID             string
	Kind                  EntryKind
	Amount                int64
	Description           string
	Status                EntryStatus
	RecipientNumber       string
	RecipientName         string
	CounterpartyAccountID string
	AssetSymbol           string
	RecipientAddress      string
	NetworkFee            int64
	Network               string
}

// EntryStore is the append-oriented transaction log. Append must be durable
// before it returns success. No delete operation exists; the only permitted
// mutation is a non-terminal status transition driven by reconciliation.
type EntryStore interface {
	Append(ctx context.Context, in AppendEntryInput) (Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Entry, error)
	ListByStatus(ctx context.Context, status EntryStatus, limit int) ([]Entry, error)
	SumAmountByOwner(ctx context.Context, ownerID string, kinds []EntryKind, window TimeWindow) (int64, error)
	UpdateStatus(ctx context.Context, id string, status EntryStatus) error
}

type IdempotencyClaim struct {
	OwnerID         string
	SourceAccountID string
	Key             string
	EntryID         string
	CreatedAt       time.Time
}

// IdempotencyStore binds an idempotency key to the entry it produced.
// Claim must fail with ErrIdempotencyKeyAlreadyClaimed when the
// (owner, source account, key) tuple already exists; Find returns
// ErrIdempotencyClaimNotFound when no claim matches.
type IdempotencyStore interface {
	Claim(ctx context.Context, claim IdempotencyClaim) error
	Find(ctx context.Context, ownerID, sourceAccountID, key string) (IdempotencyClaim, error)
}

type AtomicTransferInput struct {
	Request              TransferRequest
	SourceAccount        Account
	DestinationAccountID string
	Entry                AppendEntryInput
}

// TransferStore is an optional storage fast path that applies the debit,
// credit, entry append, and idempotency claim as one all-or-nothing unit.
// Stores without multi-entity atomicity simply do not implement it; the
// engine then falls back to the compensating-reversal protocol over
// AccountStore, EntryStore, and IdempotencyStore.
type TransferStore interface {
	ExecuteTransfer(ctx context.Context, in AtomicTransferInput) (TransferResult, error)
}

// StoreProvider is what repository factories hand back to the service wiring.
type StoreProvider interface {
	AccountStore() AccountStore
	EntryStore() EntryStore
	IdempotencyStore() IdempotencyStore
}

type DashboardStats struct {
	TotalBalance  int64
	AccountCount  int
	MonthlySpend  int64
	RecentEntries []Entry
}

// BalanceReader is the read-only aggregation surface consumed by dashboards.
// Reads are snapshot-consistent per statement; they are not linearized with
// concurrent transfers.
type BalanceReader interface {
	TotalBalance(ctx context.Context, ownerID string) (int64, error)
	MonthlySpend(ctx context.Context, ownerID string, window TimeWindow) (int64, error)
	DashboardStats(ctx context.Context, ownerID string, now time.Time) (DashboardStats, error)
}
