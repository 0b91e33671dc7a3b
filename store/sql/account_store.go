package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-ledger/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type AccountStore struct {
	db   *bun.DB
	repo repository.Repository[*accountRecord]
}

func (s *AccountStore) Create(ctx context.Context, in core.CreateAccountInput) (core.Account, error) {
	if s == nil || s.repo == nil {
		return core.Account{}, fmt.Errorf("sqlstore: account store is not configured")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return core.Account{}, fmt.Errorf("sqlstore: owner id is required")
	}
	if strings.TrimSpace(in.Number) == "" {
		return core.Account{}, fmt.Errorf("sqlstore: account number is required")
	}
	if err := in.Kind.Validate(); err != nil {
		return core.Account{}, err
	}

	status := in.Status
	if strings.TrimSpace(string(status)) == "" {
		status = core.AccountStatusActive
	}
	in.Status = status

	record := newAccountRecord(in, time.Now().UTC())
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.Account{}, storageError(err)
	}
	return created.toDomain(), nil
}

func (s *AccountStore) Get(ctx context.Context, id string) (core.Account, error) {
	if s == nil || s.db == nil {
		return core.Account{}, fmt.Errorf("sqlstore: account store is not configured")
	}
	return getAccount(ctx, s.db, id)
}

func (s *AccountStore) GetByNumber(ctx context.Context, number string) (core.Account, error) {
	if s == nil || s.db == nil {
		return core.Account{}, fmt.Errorf("sqlstore: account store is not configured")
	}
	record := &accountRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.number = ?", strings.TrimSpace(number)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Account{}, fmt.Errorf("%w: number %q", core.ErrAccountNotFound, number)
		}
		return core.Account{}, storageError(err)
	}
	return record.toDomain(), nil
}

func (s *AccountStore) ListByOwner(ctx context.Context, ownerID string) ([]core.Account, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: account store is not configured")
	}
	var records []*accountRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.owner_id = ?", strings.TrimSpace(ownerID)).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	out := make([]core.Account, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *AccountStore) AdjustBalance(ctx context.Context, id string, delta int64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: account store is not configured")
	}
	return adjustBalance(ctx, s.db, id, delta)
}

func (s *AccountStore) UpdateStatus(ctx context.Context, id string, status core.AccountStatus) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: account store is not configured")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("sqlstore: account id is required")
	}
	res, err := s.db.NewUpdate().
		Model((*accountRecord)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", trimmed).
		Exec(ctx)
	if err != nil {
		return storageError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return storageError(err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %q", core.ErrAccountNotFound, id)
	}
	return nil
}

func getAccount(ctx context.Context, db bun.IDB, id string) (core.Account, error) {
	record := &accountRecord{}
	err := db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Account{}, fmt.Errorf("%w: id %q", core.ErrAccountNotFound, id)
		}
		return core.Account{}, storageError(err)
	}
	return record.toDomain(), nil
}

// adjustBalance applies a signed delta as one conditional UPDATE. The floor
// predicate and, for debits, the active-status check run inside the same
// statement, so two concurrent adjustments serialize on the row and cannot
// produce a lost update or overdraw.
func adjustBalance(ctx context.Context, db bun.IDB, id string, delta int64) (int64, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return 0, fmt.Errorf("sqlstore: account id is required")
	}

	query := db.NewUpdate().
		Model((*accountRecord)(nil)).
		Set("balance = balance + ?", delta).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", trimmed)
	if delta < 0 {
		query = query.
			Where("status = ?", string(core.AccountStatusActive)).
			Where("balance + ? >= (CASE WHEN kind = ? THEN -credit_limit ELSE 0 END)",
				delta, string(core.AccountKindCredit))
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, storageError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, storageError(err)
	}
	if rows == 0 {
		account, getErr := getAccount(ctx, db, trimmed)
		if getErr != nil {
			return 0, getErr
		}
		if delta < 0 && account.Status != core.AccountStatusActive {
			return 0, fmt.Errorf("sqlstore: account %q is %s, not active", account.Number, account.Status)
		}
		return 0, fmt.Errorf("%w: id %q delta %d", core.ErrBalanceFloorViolated, trimmed, delta)
	}

	account, err := getAccount(ctx, db, trimmed)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}
