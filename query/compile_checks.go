package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-ledger/core"
)

var (
	_ gocmd.Querier[GetAccountMessage, core.Account]            = (*GetAccountQuery)(nil)
	_ gocmd.Querier[ListAccountsMessage, []core.Account]        = (*ListAccountsQuery)(nil)
	_ gocmd.Querier[ListEntriesMessage, []core.Entry]           = (*ListEntriesQuery)(nil)
	_ gocmd.Querier[TotalBalanceMessage, int64]                 = (*TotalBalanceQuery)(nil)
	_ gocmd.Querier[MonthlySpendMessage, int64]                 = (*MonthlySpendQuery)(nil)
	_ gocmd.Querier[DashboardStatsMessage, core.DashboardStats] = (*DashboardStatsQuery)(nil)

	_ AccountReader = (*core.Service)(nil)
	_ EntryReader   = (*core.Service)(nil)
	_ BalanceReader = (*core.Service)(nil)
)
