package core

import (
	"fmt"
	"strings"
)

type TransferKind string

const (
	TransferKindInternal TransferKind = "internal"
	TransferKindExternal TransferKind = "external-fiat"
	TransferKindCrypto   TransferKind = "crypto"
)

// TransferDetails is a closed union over the three transfer kinds. Each
// variant carries only the fields its kind requires; the compiler enforces
// the shape instead of runtime field sniffing.
type TransferDetails interface {
	Kind() TransferKind
	validateDetails(cfg TransferConfig) error
}

// InternalTransfer moves value between two accounts known to this ledger.
// The destination account may belong to any owner.
type InternalTransfer struct {
	DestinationNumber string
}

func (InternalTransfer) Kind() TransferKind { return TransferKindInternal }

func (t InternalTransfer) validateDetails(TransferConfig) error {
	if strings.TrimSpace(t.DestinationNumber) == "" {
		return fieldRequired("destination_number")
	}
	return nil
}

// ExternalTransfer moves value to an account identifier outside this ledger.
// The destination is recorded as metadata only; no far-side balance changes.
type ExternalTransfer struct {
	DestinationNumber string
	RecipientName     string
}

func (ExternalTransfer) Kind() TransferKind { return TransferKindExternal }

func (t ExternalTransfer) validateDetails(TransferConfig) error {
	if strings.TrimSpace(t.DestinationNumber) == "" {
		return fieldRequired("destination_number")
	}
	return nil
}

// CryptoTransfer records a crypto-denominated movement with blockchain-style
// metadata. Nothing is broadcast to a network.
type CryptoTransfer struct {
	AssetSymbol      string
	RecipientAddress string
	NetworkFee       int64
	Network          string
}

func (CryptoTransfer) Kind() TransferKind { return TransferKindCrypto }

func (t CryptoTransfer) validateDetails(cfg TransferConfig) error {
	symbol := strings.ToUpper(strings.TrimSpace(t.AssetSymbol))
	if symbol == "" {
		return fieldRequired("asset_symbol")
	}
	if !cfg.SupportsCryptoAsset(symbol) {
		return fmt.Errorf("%w: %q", ErrUnsupportedCryptoAsset, symbol)
	}
	if strings.TrimSpace(t.RecipientAddress) == "" {
		return fieldRequired("recipient_address")
	}
	if t.NetworkFee < 0 {
		return fieldInvalid("network_fee", "must not be negative")
	}
	return nil
}

// TransferRequest is the Transfer Engine input. OwnerID is the verified caller
// identity supplied by the identity collaborator; the engine trusts it.
type TransferRequest struct {
	OwnerID         string
	SourceAccountID string
	Amount          int64
	Description     string
	IdempotencyKey  string
	Details         TransferDetails
}

// Validate checks the request shape only. Ownership, funds, and destination
// resolution are verified by the engine in its fixed order.
func (r TransferRequest) Validate(cfg TransferConfig) error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return fieldRequired("owner_id")
	}
	if strings.TrimSpace(r.SourceAccountID) == "" {
		return fieldRequired("source_account_id")
	}
	if r.Amount <= 0 {
		return fieldInvalid("amount", "must be positive")
	}
	if strings.TrimSpace(r.IdempotencyKey) == "" {
		return fieldRequired("idempotency_key")
	}
	if r.Details == nil {
		return fieldRequired("details")
	}
	return r.Details.validateDetails(cfg)
}

// EntryKind maps the transfer kind onto the ledger entry taxonomy.
func (r TransferRequest) EntryKind() EntryKind {
	switch r.Details.(type) {
	case InternalTransfer:
		return EntryKindTransfer
	case ExternalTransfer:
		return EntryKindPayment
	case CryptoTransfer:
		return EntryKindCrypto
	default:
		return EntryKindTransfer
	}
}

// TransferResult bundles the created log entry with the identifiers of every
// account the transfer touched. DestinationAccountID is empty unless the
// transfer was internal.
type TransferResult struct {
	Entry                Entry
	SourceAccountID      string
	DestinationAccountID string
	Replayed             bool
}

func fieldRequired(field string) error {
	return fmt.Errorf("core: %s is required", field)
}

func fieldInvalid(field, reason string) error {
	return fmt.Errorf("core: %s %s", field, reason)
}
