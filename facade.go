package ledger

import (
	"fmt"

	ledgercommand "github.com/goliatone/go-ledger/command"
	ledgerquery "github.com/goliatone/go-ledger/query"
)

// CommandQueryService is the full surface the facade wires commands and
// queries against. *core.Service satisfies it.
type CommandQueryService interface {
	ledgercommand.MutatingService
	ledgerquery.AccountReader
	ledgerquery.EntryReader
	ledgerquery.BalanceReader
}

type Commands struct {
	ExecuteTransfer     *ledgercommand.ExecuteTransferCommand
	OpenAccount         *ledgercommand.OpenAccountCommand
	UpdateAccountStatus *ledgercommand.UpdateAccountStatusCommand
	RecordDeposit       *ledgercommand.RecordDepositCommand
	ReconcilePending    *ledgercommand.ReconcilePendingCommand
}

type Queries struct {
	GetAccount     *ledgerquery.GetAccountQuery
	ListAccounts   *ledgerquery.ListAccountsQuery
	ListEntries    *ledgerquery.ListEntriesQuery
	TotalBalance   *ledgerquery.TotalBalanceQuery
	MonthlySpend   *ledgerquery.MonthlySpendQuery
	DashboardStats *ledgerquery.DashboardStatsQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("ledger: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		ExecuteTransfer:     ledgercommand.NewExecuteTransferCommand(service),
		OpenAccount:         ledgercommand.NewOpenAccountCommand(service),
		UpdateAccountStatus: ledgercommand.NewUpdateAccountStatusCommand(service),
		RecordDeposit:       ledgercommand.NewRecordDepositCommand(service),
		ReconcilePending:    ledgercommand.NewReconcilePendingCommand(service),
	}
	facade.queries = Queries{
		GetAccount:     ledgerquery.NewGetAccountQuery(service),
		ListAccounts:   ledgerquery.NewListAccountsQuery(service),
		ListEntries:    ledgerquery.NewListEntriesQuery(service),
		TotalBalance:   ledgerquery.NewTotalBalanceQuery(service),
		MonthlySpend:   ledgerquery.NewMonthlySpendQuery(service),
		DashboardStats: ledgerquery.NewDashboardStatsQuery(service),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
