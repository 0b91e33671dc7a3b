package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-ledger/core"
	"github.com/uptrace/bun"
)

var errTransferIdempotencyReplay = errors.New("sqlstore: transfer idempotency replay")

// TransferStore is the transactional fast path for transfers. The debit,
// credit, log append, and idempotency claim run inside one RunInTx unit, so
// partial application cannot be observed and a concurrent duplicate loses on
// the tuple's unique index and rolls back completely.
type TransferStore struct {
	db *bun.DB
}

func (s *TransferStore) ExecuteTransfer(ctx context.Context, in core.AtomicTransferInput) (core.TransferResult, error) {
	if s == nil || s.db == nil {
		return core.TransferResult{}, fmt.Errorf("sqlstore: transfer store is not configured")
	}
	req := in.Request
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return core.TransferResult{}, fmt.Errorf("sqlstore: idempotency key is required")
	}

	var result core.TransferResult
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := adjustBalance(ctx, tx, in.SourceAccount.ID, -req.Amount); err != nil {
			return err
		}
		if in.DestinationAccountID != "" {
			if _, err := adjustBalance(ctx, tx, in.DestinationAccountID, req.Amount); err != nil {
				return err
			}
		}

		created, err := appendEntry(ctx, tx, in.Entry)
		if err != nil {
			return err
		}

		claimErr := claimIdempotency(ctx, tx, core.IdempotencyClaim{
			OwnerID:         req.OwnerID,
			SourceAccountID: req.SourceAccountID,
			Key:             req.IdempotencyKey,
			EntryID:         created.ID,
			CreatedAt:       time.Now().UTC(),
		})
		if claimErr != nil {
			if errors.Is(claimErr, core.ErrIdempotencyKeyAlreadyClaimed) {
				return errTransferIdempotencyReplay
			}
			return claimErr
		}

		result = core.TransferResult{
			Entry:                created,
			SourceAccountID:      in.SourceAccount.ID,
			DestinationAccountID: in.DestinationAccountID,
		}
		return nil
	})
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, errTransferIdempotencyReplay) {
		return core.TransferResult{}, storageError(err)
	}

	// A duplicate claimed the tuple first; our transaction rolled back in
	// full. Return the original execution's result.
	claim, lookupErr := findIdempotency(ctx, s.db, req.OwnerID, req.SourceAccountID, req.IdempotencyKey)
	if lookupErr != nil {
		return core.TransferResult{}, lookupErr
	}
	record := &entryRecord{}
	if scanErr := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", claim.EntryID).
		Limit(1).
		Scan(ctx); scanErr != nil {
		return core.TransferResult{}, fmt.Errorf("sqlstore: replay entry lookup failed: %w", storageError(scanErr))
	}
	entry := record.toDomain()
	return core.TransferResult{
		Entry:                entry,
		SourceAccountID:      entry.AccountID,
		DestinationAccountID: entry.CounterpartyAccountID,
		Replayed:             true,
	}, nil
}
