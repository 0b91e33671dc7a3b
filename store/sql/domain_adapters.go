package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-ledger/core"
)

func newAccountRecord(in core.CreateAccountInput, now time.Time) *accountRecord {
	return &accountRecord{
		Number:      strings.TrimSpace(in.Number),
		OwnerID:     strings.TrimSpace(in.OwnerID),
		Kind:        string(in.Kind),
		Balance:     in.InitialBalance,
		CreditLimit: in.CreditLimit,
		Status:      string(in.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *accountRecord) toDomain() core.Account {
	if r == nil {
		return core.Account{}
	}
	return core.Account{
		ID:          r.ID,
		Number:      r.Number,
		OwnerID:     r.OwnerID,
		Kind:        core.AccountKind(r.Kind),
		Balance:     r.Balance,
		CreditLimit: r.CreditLimit,
		Status:      core.AccountStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func newEntryRecord(in core.AppendEntryInput, now time.Time) *entryRecord {
	return &entryRecord{
		OwnerID:               strings.TrimSpace(in.OwnerID),
		AccountID:             strings.TrimSpace(in.AccountID),
		Kind:                  string(in.Kind),
		Amount:                in.Amount,
		Description:           in.Description,
		Status:                string(in.Status),
		RecipientNumber:       strings.TrimSpace(in.RecipientNumber),
		RecipientName:         strings.TrimSpace(in.RecipientName),
		CounterpartyAccountID: strings.TrimSpace(in.CounterpartyAccountID),
		AssetSymbol:           strings.TrimSpace(in.AssetSymbol),
		RecipientAddress:      strings.TrimSpace(in.RecipientAddress),
		NetworkFee:            in.NetworkFee,
		Network:               strings.TrimSpace(in.Network),
		CreatedAt:             now,
	}
}

func (r *entryRecord) toDomain() core.Entry {
	if r == nil {
		return core.Entry{}
	}
	return core.Entry{
		ID:                    r.ID,
		OwnerID:               r.OwnerID,
		AccountID:             r.AccountID,
		Kind:                  core.EntryKind(r.Kind),
		Amount:                r.Amount,
		Description:           r.Description,
		Status:                core.EntryStatus(r.Status),
		RecipientNumber:       r.RecipientNumber,
		RecipientName:         r.RecipientName,
		CounterpartyAccountID: r.CounterpartyAccountID,
		AssetSymbol:           r.AssetSymbol,
		RecipientAddress:      r.RecipientAddress,
		NetworkFee:            r.NetworkFee,
		Network:               r.Network,
		CreatedAt:             r.CreatedAt,
	}
}

func (r *transferIdempotencyRecord) toDomain() core.IdempotencyClaim {
	if r == nil {
		return core.IdempotencyClaim{}
	}
	return core.IdempotencyClaim{
		OwnerID:         r.OwnerID,
		SourceAccountID: r.SourceAccountID,
		Key:             r.IdempotencyKey,
		EntryID:         r.EntryID,
		CreatedAt:       r.CreatedAt,
	}
}
