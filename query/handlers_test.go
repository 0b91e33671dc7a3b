package query

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-ledger/core"
)

type stubAccountReader struct {
	getAccountFn   func(ctx context.Context, ownerID, accountID string) (core.Account, error)
	listAccountsFn func(ctx context.Context, ownerID string) ([]core.Account, error)
}

func (s stubAccountReader) GetAccount(ctx context.Context, ownerID, accountID string) (core.Account, error) {
	return s.getAccountFn(ctx, ownerID, accountID)
}

func (s stubAccountReader) ListAccounts(ctx context.Context, ownerID string) ([]core.Account, error) {
	return s.listAccountsFn(ctx, ownerID)
}

type stubEntryReader struct {
	listEntriesFn func(ctx context.Context, ownerID string, limit int) ([]core.Entry, error)
}

func (s stubEntryReader) ListEntries(ctx context.Context, ownerID string, limit int) ([]core.Entry, error) {
	return s.listEntriesFn(ctx, ownerID, limit)
}

type stubBalanceReader struct {
	totalBalanceFn   func(ctx context.Context, ownerID string) (int64, error)
	monthlySpendFn   func(ctx context.Context, ownerID string, window core.TimeWindow) (int64, error)
	dashboardStatsFn func(ctx context.Context, ownerID string, now time.Time) (core.DashboardStats, error)
}

func (s stubBalanceReader) TotalBalance(ctx context.Context, ownerID string) (int64, error) {
	return s.totalBalanceFn(ctx, ownerID)
}

func (s stubBalanceReader) MonthlySpend(ctx context.Context, ownerID string, window core.TimeWindow) (int64, error) {
	return s.monthlySpendFn(ctx, ownerID, window)
}

func (s stubBalanceReader) DashboardStats(ctx context.Context, ownerID string, now time.Time) (core.DashboardStats, error) {
	return s.dashboardStatsFn(ctx, ownerID, now)
}

func TestGetAccountQuery_DelegatesToReader(t *testing.T) {
	expected := core.Account{ID: "acc_1", OwnerID: "owner_1", Number: "000000000001", Balance: 1000}
	reader := stubAccountReader{
		getAccountFn: func(_ context.Context, ownerID, accountID string) (core.Account, error) {
			if ownerID != "owner_1" || accountID != "acc_1" {
				t.Fatalf("unexpected lookup: %q %q", ownerID, accountID)
			}
			return expected, nil
		},
	}

	q := NewGetAccountQuery(reader)
	account, err := q.Query(context.Background(), GetAccountMessage{OwnerID: "owner_1", AccountID: "acc_1"})
	if err != nil {
		t.Fatalf("get account query: %v", err)
	}
	if account.ID != expected.ID || account.Balance != expected.Balance {
		t.Fatalf("unexpected account: %#v", account)
	}
}

func TestListAccountsQuery_DelegatesToReader(t *testing.T) {
	reader := stubAccountReader{
		listAccountsFn: func(_ context.Context, ownerID string) ([]core.Account, error) {
			if ownerID != "owner_1" {
				t.Fatalf("unexpected owner: %q", ownerID)
			}
			return []core.Account{{ID: "acc_1"}, {ID: "acc_2"}}, nil
		},
	}

	q := NewListAccountsQuery(reader)
	accounts, err := q.Query(context.Background(), ListAccountsMessage{OwnerID: "owner_1"})
	if err != nil {
		t.Fatalf("list accounts query: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
}

func TestListEntriesQuery_PassesLimitThrough(t *testing.T) {
	reader := stubEntryReader{
		listEntriesFn: func(_ context.Context, ownerID string, limit int) ([]core.Entry, error) {
			if ownerID != "owner_1" || limit != 25 {
				t.Fatalf("unexpected list input: %q %d", ownerID, limit)
			}
			return []core.Entry{{ID: "ent_1"}}, nil
		},
	}

	q := NewListEntriesQuery(reader)
	entries, err := q.Query(context.Background(), ListEntriesMessage{OwnerID: "owner_1", Limit: 25})
	if err != nil {
		t.Fatalf("list entries query: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "ent_1" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestTotalBalanceQuery_DelegatesToReader(t *testing.T) {
	reader := stubBalanceReader{
		totalBalanceFn: func(_ context.Context, ownerID string) (int64, error) {
			if ownerID != "owner_1" {
				t.Fatalf("unexpected owner: %q", ownerID)
			}
			return 4200, nil
		},
	}

	q := NewTotalBalanceQuery(reader)
	total, err := q.Query(context.Background(), TotalBalanceMessage{OwnerID: "owner_1"})
	if err != nil {
		t.Fatalf("total balance query: %v", err)
	}
	if total != 4200 {
		t.Fatalf("expected total 4200, got %d", total)
	}
}

func TestMonthlySpendQuery_DefaultsToCurrentMonthWindow(t *testing.T) {
	var captured core.TimeWindow
	reader := stubBalanceReader{
		monthlySpendFn: func(_ context.Context, _ string, window core.TimeWindow) (int64, error) {
			captured = window
			return 900, nil
		},
	}

	q := NewMonthlySpendQuery(reader)
	spend, err := q.Query(context.Background(), MonthlySpendMessage{OwnerID: "owner_1"})
	if err != nil {
		t.Fatalf("monthly spend query: %v", err)
	}
	if spend != 900 {
		t.Fatalf("expected spend 900, got %d", spend)
	}
	if captured.From.IsZero() || captured.To.IsZero() {
		t.Fatalf("expected a defaulted month window, got %#v", captured)
	}
	if captured.From.Day() != 1 {
		t.Fatalf("expected window to start on the first of the month, got %v", captured.From)
	}
}

func TestMonthlySpendQuery_UsesExplicitWindow(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	reader := stubBalanceReader{
		monthlySpendFn: func(_ context.Context, _ string, window core.TimeWindow) (int64, error) {
			if !window.From.Equal(from) || !window.To.Equal(to) {
				t.Fatalf("unexpected window: %#v", window)
			}
			return 150, nil
		},
	}

	q := NewMonthlySpendQuery(reader)
	spend, err := q.Query(context.Background(), MonthlySpendMessage{
		OwnerID: "owner_1",
		Window:  core.TimeWindow{From: from, To: to},
	})
	if err != nil {
		t.Fatalf("monthly spend query: %v", err)
	}
	if spend != 150 {
		t.Fatalf("expected spend 150, got %d", spend)
	}
}

func TestDashboardStatsQuery_DelegatesToReader(t *testing.T) {
	expected := core.DashboardStats{
		TotalBalance: 5000,
		AccountCount: 3,
		MonthlySpend: 700,
		RecentEntries: []core.Entry{
			{ID: "ent_2"},
			{ID: "ent_1"},
		},
	}
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	reader := stubBalanceReader{
		dashboardStatsFn: func(_ context.Context, ownerID string, at time.Time) (core.DashboardStats, error) {
			if ownerID != "owner_1" {
				t.Fatalf("unexpected owner: %q", ownerID)
			}
			if !at.Equal(now) {
				t.Fatalf("unexpected clock value: %v", at)
			}
			return expected, nil
		},
	}

	q := NewDashboardStatsQuery(reader)
	q.now = func() time.Time { return now }

	stats, err := q.Query(context.Background(), DashboardStatsMessage{OwnerID: "owner_1"})
	if err != nil {
		t.Fatalf("dashboard stats query: %v", err)
	}
	if stats.TotalBalance != expected.TotalBalance || len(stats.RecentEntries) != 2 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}
