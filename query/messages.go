package query

import (
	"strings"

	"github.com/goliatone/go-ledger/core"
)

const (
	TypeGetAccount     = "ledger.query.account.get"
	TypeListAccounts   = "ledger.query.account.list"
	TypeListEntries    = "ledger.query.entry.list"
	TypeTotalBalance   = "ledger.query.balance.total"
	TypeMonthlySpend   = "ledger.query.balance.monthly_spend"
	TypeDashboardStats = "ledger.query.dashboard.stats"
)

type GetAccountMessage struct {
	OwnerID   string
	AccountID string
}

func (GetAccountMessage) Type() string { return TypeGetAccount }

func (m GetAccountMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return queryValidationError("owner_id", "owner id is required")
	}
	if strings.TrimSpace(m.AccountID) == "" {
		return queryValidationError("account_id", "account id is required")
	}
	return nil
}

type ListAccountsMessage struct {
	OwnerID string
}

func (ListAccountsMessage) Type() string { return TypeListAccounts }

func (m ListAccountsMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return queryValidationError("owner_id", "owner id is required")
	}
	return nil
}

type ListEntriesMessage struct {
	OwnerID string
	Limit   int
}

func (ListEntriesMessage) Type() string { return TypeListEntries }

func (m ListEntriesMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return queryValidationError("owner_id", "owner id is required")
	}
	if m.Limit < 0 {
		return queryValidationError("limit", "limit must be >= 0")
	}
	return nil
}

type TotalBalanceMessage struct {
	OwnerID string
}

func (TotalBalanceMessage) Type() string { return TypeTotalBalance }

func (m TotalBalanceMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return queryValidationError("owner_id", "owner id is required")
	}
	return nil
}

type MonthlySpendMessage struct {
	OwnerID string
	Window  core.TimeWindow
}

func (MonthlySpendMessage) Type() string { return TypeMonthlySpend }

func (m MonthlySpendMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return queryValidationError("owner_id", "owner id is required")
	}
	if !m.Window.From.IsZero() && !m.Window.To.IsZero() && m.Window.To.Before(m.Window.From) {
		return queryValidationError("window", "window end must not precede start")
	}
	return nil
}

type DashboardStatsMessage struct {
	OwnerID string
}

func (DashboardStatsMessage) Type() string { return TypeDashboardStats }

func (m DashboardStatsMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return queryValidationError("owner_id", "owner id is required")
	}
	return nil
}
