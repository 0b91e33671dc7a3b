package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type accountRecord struct {
	bun.BaseModel `bun:"table:ledger_accounts,alias:la"`

	ID          string    `bun:"id,pk"`
	Number      string    `bun:"number,notnull"`
	OwnerID     string    `bun:"owner_id,notnull"`
	Kind        string    `bun:"kind,notnull"`
	Balance     int64     `bun:"balance,notnull"`
	CreditLimit int64     `bun:"credit_limit,notnull"`
	Status      string    `bun:"status,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type entryRecord struct {
	bun.BaseModel `bun:"table:ledger_entries,alias:le"`

	ID                    string    `bun:"id,pk"`
	OwnerID               string    `bun:"owner_id,notnull"`
	AccountID             string    `bun:"account_id,notnull"`
	Kind                  string    `bun:"kind,notnull"`
	Amount                int64     `bun:"amount,notnull"`
	Description           string    `bun:"description"`
	Status                string    `bun:"status,notnull"`
	RecipientNumber       string    `bun:"recipient_number"`
	RecipientName         string    `bun:"recipient_name"`
	CounterpartyAccountID string    `bun:"counterparty_account_id"`
	AssetSymbol           string    `bun:"asset_symbol"`
	RecipientAddress      string    `bun:"recipient_address"`
	NetworkFee            int64     `bun:"network_fee"`
	Network               string    `bun:"network"`
	CreatedAt             time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type transferIdempotencyRecord struct {
	bun.BaseModel `bun:"table:ledger_transfer_idempotency,alias:lti"`

	ID              string    `bun:"id,pk"`
	OwnerID         string    `bun:"owner_id,notnull"`
	SourceAccountID string    `bun:"source_account_id,notnull"`
	IdempotencyKey  string    `bun:"idempotency_key,notnull"`
	EntryID         string    `bun:"entry_id,notnull"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
