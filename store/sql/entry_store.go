package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-ledger/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EntryStore is the append-oriented transaction log. Rows are never deleted;
// the only mutation is a non-terminal status transition.
type EntryStore struct {
	db *bun.DB
}

func (s *EntryStore) Append(ctx context.Context, in core.AppendEntryInput) (core.Entry, error) {
	if s == nil || s.db == nil {
		return core.Entry{}, fmt.Errorf("sqlstore: entry store is not configured")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return core.Entry{}, fmt.Errorf("sqlstore: owner id is required")
	}
	if strings.TrimSpace(in.AccountID) == "" {
		return core.Entry{}, fmt.Errorf("sqlstore: account id is required")
	}
	if err := in.Kind.Validate(); err != nil {
		return core.Entry{}, err
	}
	return appendEntry(ctx, s.db, in)
}

func (s *EntryStore) Get(ctx context.Context, id string) (core.Entry, error) {
	if s == nil || s.db == nil {
		return core.Entry{}, fmt.Errorf("sqlstore: entry store is not configured")
	}
	record := &entryRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Entry{}, fmt.Errorf("%w: id %q", core.ErrEntryNotFound, id)
		}
		return core.Entry{}, storageError(err)
	}
	return record.toDomain(), nil
}

func (s *EntryStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]core.Entry, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: entry store is not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	var records []*entryRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.owner_id = ?", strings.TrimSpace(ownerID)).
		Order("created_at DESC", "id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return entriesToDomain(records), nil
}

func (s *EntryStore) ListByStatus(ctx context.Context, status core.EntryStatus, limit int) ([]core.Entry, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: entry store is not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	var records []*entryRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.status = ?", string(status)).
		Order("created_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return entriesToDomain(records), nil
}

func (s *EntryStore) SumAmountByOwner(ctx context.Context, ownerID string, kinds []core.EntryKind, window core.TimeWindow) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: entry store is not configured")
	}
	if len(kinds) == 0 {
		return 0, nil
	}
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}

	var total int64
	err := s.db.NewSelect().
		Model((*entryRecord)(nil)).
		ColumnExpr("COALESCE(SUM(?TableAlias.amount), 0)").
		Where("?TableAlias.owner_id = ?", strings.TrimSpace(ownerID)).
		Where("?TableAlias.status = ?", string(core.EntryStatusCompleted)).
		Where("?TableAlias.kind IN (?)", bun.In(names)).
		Where("?TableAlias.created_at >= ?", window.From).
		Where("?TableAlias.created_at < ?", window.To).
		Scan(ctx, &total)
	if err != nil {
		return 0, storageError(err)
	}
	return total, nil
}

func (s *EntryStore) UpdateStatus(ctx context.Context, id string, status core.EntryStatus) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: entry store is not configured")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := current.TransitionTo(status); err != nil {
		return err
	}
	res, err := s.db.NewUpdate().
		Model((*entryRecord)(nil)).
		Set("status = ?", string(status)).
		Where("id = ?", strings.TrimSpace(id)).
		Exec(ctx)
	if err != nil {
		return storageError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return storageError(err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %q", core.ErrEntryNotFound, id)
	}
	return nil
}

func appendEntry(ctx context.Context, db bun.IDB, in core.AppendEntryInput) (core.Entry, error) {
	record := newEntryRecord(in, time.Now().UTC())
	record.ID = uuid.NewString()
	if _, err := db.NewInsert().Model(record).Exec(ctx); err != nil {
		return core.Entry{}, storageError(err)
	}
	return record.toDomain(), nil
}

func entriesToDomain(records []*entryRecord) []core.Entry {
	out := make([]core.Entry, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out
}
