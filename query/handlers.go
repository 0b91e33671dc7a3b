package query

import (
	"context"
	"time"

	"github.com/goliatone/go-ledger/core"
)

type AccountReader interface {
	GetAccount(ctx context.Context, ownerID, accountID string) (core.Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]core.Account, error)
}

type EntryReader interface {
	ListEntries(ctx context.Context, ownerID string, limit int) ([]core.Entry, error)
}

type BalanceReader interface {
	TotalBalance(ctx context.Context, ownerID string) (int64, error)
	MonthlySpend(ctx context.Context, ownerID string, window core.TimeWindow) (int64, error)
	DashboardStats(ctx context.Context, ownerID string, now time.Time) (core.DashboardStats, error)
}

type GetAccountQuery struct {
	reader AccountReader
}

func NewGetAccountQuery(reader AccountReader) *GetAccountQuery {
	return &GetAccountQuery{reader: reader}
}

func (q *GetAccountQuery) Query(ctx context.Context, msg GetAccountMessage) (core.Account, error) {
	if q == nil || q.reader == nil {
		return core.Account{}, queryDependencyError("query: account reader is required")
	}
	return q.reader.GetAccount(ctx, msg.OwnerID, msg.AccountID)
}

type ListAccountsQuery struct {
	reader AccountReader
}

func NewListAccountsQuery(reader AccountReader) *ListAccountsQuery {
	return &ListAccountsQuery{reader: reader}
}

func (q *ListAccountsQuery) Query(ctx context.Context, msg ListAccountsMessage) ([]core.Account, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: account reader is required")
	}
	return q.reader.ListAccounts(ctx, msg.OwnerID)
}

type ListEntriesQuery struct {
	reader EntryReader
}

func NewListEntriesQuery(reader EntryReader) *ListEntriesQuery {
	return &ListEntriesQuery{reader: reader}
}

func (q *ListEntriesQuery) Query(ctx context.Context, msg ListEntriesMessage) ([]core.Entry, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: entry reader is required")
	}
	return q.reader.ListEntries(ctx, msg.OwnerID, msg.Limit)
}

type TotalBalanceQuery struct {
	reader BalanceReader
}

func NewTotalBalanceQuery(reader BalanceReader) *TotalBalanceQuery {
	return &TotalBalanceQuery{reader: reader}
}

func (q *TotalBalanceQuery) Query(ctx context.Context, msg TotalBalanceMessage) (int64, error) {
	if q == nil || q.reader == nil {
		return 0, queryDependencyError("query: balance reader is required")
	}
	return q.reader.TotalBalance(ctx, msg.OwnerID)
}

type MonthlySpendQuery struct {
	reader BalanceReader
}

func NewMonthlySpendQuery(reader BalanceReader) *MonthlySpendQuery {
	return &MonthlySpendQuery{reader: reader}
}

func (q *MonthlySpendQuery) Query(ctx context.Context, msg MonthlySpendMessage) (int64, error) {
	if q == nil || q.reader == nil {
		return 0, queryDependencyError("query: balance reader is required")
	}
	window := msg.Window
	if window.From.IsZero() && window.To.IsZero() {
		window = core.MonthWindow(time.Now().UTC())
	}
	return q.reader.MonthlySpend(ctx, msg.OwnerID, window)
}

type DashboardStatsQuery struct {
	reader BalanceReader
	now    func() time.Time
}

func NewDashboardStatsQuery(reader BalanceReader) *DashboardStatsQuery {
	return &DashboardStatsQuery{reader: reader, now: func() time.Time { return time.Now().UTC() }}
}

func (q *DashboardStatsQuery) Query(ctx context.Context, msg DashboardStatsMessage) (core.DashboardStats, error) {
	if q == nil || q.reader == nil {
		return core.DashboardStats{}, queryDependencyError("query: balance reader is required")
	}
	now := time.Now().UTC()
	if q.now != nil {
		now = q.now()
	}
	return q.reader.DashboardStats(ctx, msg.OwnerID, now)
}
