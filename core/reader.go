package core

import (
	"context"
	"fmt"
	"time"
)

// outgoingEntryKinds are the kinds counted toward monthly spend.
var outgoingEntryKinds = []EntryKind{
	EntryKindWithdrawal,
	EntryKindTransfer,
	EntryKindPayment,
	EntryKindCrypto,
}

// GetAccount returns a single account, enforcing caller ownership.
func (s *Service) GetAccount(ctx context.Context, ownerID, accountID string) (account Account, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": ownerID, "account_id": accountID}
	defer func() {
		s.observeOperation(ctx, startedAt, "get_account", err, fields)
	}()

	if s == nil || s.accountStore == nil {
		err = s.mapError(fmt.Errorf("core: account store is not configured"))
		return Account{}, err
	}
	account, getErr := s.accountStore.Get(ctx, accountID)
	if getErr != nil {
		err = s.mapError(getErr)
		return Account{}, err
	}
	if account.OwnerID != ownerID {
		err = s.forbidden("account does not belong to the caller")
		return Account{}, err
	}
	return account, nil
}

// ListAccounts returns every account owned by the caller with current balances.
func (s *Service) ListAccounts(ctx context.Context, ownerID string) (accounts []Account, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": ownerID}
	defer func() {
		s.observeOperation(ctx, startedAt, "list_accounts", err, fields)
	}()

	if s == nil || s.accountStore == nil {
		err = s.mapError(fmt.Errorf("core: account store is not configured"))
		return nil, err
	}
	accounts, err = s.accountStore.ListByOwner(ctx, ownerID)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return accounts, nil
}

// ListEntries returns the caller's transaction log, newest first. A
// non-positive limit falls back to the configured page size, and the
// configured page size also caps explicit limits.
func (s *Service) ListEntries(ctx context.Context, ownerID string, limit int) (entries []Entry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": ownerID}
	defer func() {
		s.observeOperation(ctx, startedAt, "list_entries", err, fields)
	}()

	if s == nil || s.entryStore == nil {
		err = s.mapError(fmt.Errorf("core: entry store is not configured"))
		return nil, err
	}
	pageSize := s.config.Queries.TransactionsPageSize
	if pageSize <= 0 {
		pageSize = DefaultConfig().Queries.TransactionsPageSize
	}
	if limit <= 0 || limit > pageSize {
		limit = pageSize
	}
	entries, err = s.entryStore.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return entries, nil
}

// TotalBalance sums the current balance of every account the caller owns.
func (s *Service) TotalBalance(ctx context.Context, ownerID string) (total int64, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": ownerID}
	defer func() {
		s.observeOperation(ctx, startedAt, "total_balance", err, fields)
	}()

	if s == nil || s.accountStore == nil {
		err = s.mapError(fmt.Errorf("core: account store is not configured"))
		return 0, err
	}
	accounts, listErr := s.accountStore.ListByOwner(ctx, ownerID)
	if listErr != nil {
		err = s.mapError(listErr)
		return 0, err
	}
	for _, account := range accounts {
		total += account.Balance
	}
	return total, nil
}

// MonthlySpend sums completed outgoing entries inside the given window.
func (s *Service) MonthlySpend(ctx context.Context, ownerID string, window TimeWindow) (spend int64, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": ownerID}
	defer func() {
		s.observeOperation(ctx, startedAt, "monthly_spend", err, fields)
	}()

	if s == nil || s.entryStore == nil {
		err = s.mapError(fmt.Errorf("core: entry store is not configured"))
		return 0, err
	}
	spend, err = s.entryStore.SumAmountByOwner(ctx, ownerID, outgoingEntryKinds, window)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}
	return spend, nil
}

// DashboardStats bundles the aggregates the overview screen needs: total
// balance, account count, current-month spend, and the most recent entries.
func (s *Service) DashboardStats(ctx context.Context, ownerID string, now time.Time) (stats DashboardStats, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": ownerID}
	defer func() {
		s.observeOperation(ctx, startedAt, "dashboard_stats", err, fields)
	}()

	if s == nil || s.accountStore == nil || s.entryStore == nil {
		err = s.mapError(fmt.Errorf("core: dashboard stores are not configured"))
		return DashboardStats{}, err
	}

	accounts, listErr := s.accountStore.ListByOwner(ctx, ownerID)
	if listErr != nil {
		err = s.mapError(listErr)
		return DashboardStats{}, err
	}
	for _, account := range accounts {
		stats.TotalBalance += account.Balance
	}
	stats.AccountCount = len(accounts)

	stats.MonthlySpend, err = s.entryStore.SumAmountByOwner(ctx, ownerID, outgoingEntryKinds, MonthWindow(now))
	if err != nil {
		err = s.mapError(err)
		return DashboardStats{}, err
	}

	recentLimit := s.config.Queries.DashboardRecentLimit
	if recentLimit <= 0 {
		recentLimit = DefaultConfig().Queries.DashboardRecentLimit
	}
	stats.RecentEntries, err = s.entryStore.ListByOwner(ctx, ownerID, recentLimit)
	if err != nil {
		err = s.mapError(err)
		return DashboardStats{}, err
	}
	return stats, nil
}

var _ BalanceReader = (*Service)(nil)
