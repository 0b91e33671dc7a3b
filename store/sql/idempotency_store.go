package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-ledger/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// IdempotencyStore binds (owner, source account, key) tuples to the entry
// each transfer produced. The unique index on the tuple is the serialization
// point for duplicate submissions.
type IdempotencyStore struct {
	db *bun.DB
}

func (s *IdempotencyStore) Claim(ctx context.Context, claim core.IdempotencyClaim) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	return claimIdempotency(ctx, s.db, claim)
}

func (s *IdempotencyStore) Find(ctx context.Context, ownerID, sourceAccountID, key string) (core.IdempotencyClaim, error) {
	if s == nil || s.db == nil {
		return core.IdempotencyClaim{}, fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	return findIdempotency(ctx, s.db, ownerID, sourceAccountID, key)
}

func claimIdempotency(ctx context.Context, db bun.IDB, claim core.IdempotencyClaim) error {
	if strings.TrimSpace(claim.Key) == "" {
		return fmt.Errorf("sqlstore: idempotency key is required")
	}
	record := &transferIdempotencyRecord{
		ID:              uuid.NewString(),
		OwnerID:         strings.TrimSpace(claim.OwnerID),
		SourceAccountID: strings.TrimSpace(claim.SourceAccountID),
		IdempotencyKey:  strings.TrimSpace(claim.Key),
		EntryID:         strings.TrimSpace(claim.EntryID),
		CreatedAt:       claim.CreatedAt,
	}
	if _, err := db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return core.ErrIdempotencyKeyAlreadyClaimed
		}
		return storageError(err)
	}
	return nil
}

func findIdempotency(ctx context.Context, db bun.IDB, ownerID, sourceAccountID, key string) (core.IdempotencyClaim, error) {
	record := &transferIdempotencyRecord{}
	err := db.NewSelect().
		Model(record).
		Where("?TableAlias.owner_id = ?", strings.TrimSpace(ownerID)).
		Where("?TableAlias.source_account_id = ?", strings.TrimSpace(sourceAccountID)).
		Where("?TableAlias.idempotency_key = ?", strings.TrimSpace(key)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.IdempotencyClaim{}, core.ErrIdempotencyClaimNotFound
		}
		return core.IdempotencyClaim{}, storageError(err)
	}
	return record.toDomain(), nil
}

func isUniqueViolation(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value violates unique constraint")
}
