package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[ExecuteTransferMessage]     = (*ExecuteTransferCommand)(nil)
	_ gocmd.Commander[OpenAccountMessage]         = (*OpenAccountCommand)(nil)
	_ gocmd.Commander[UpdateAccountStatusMessage] = (*UpdateAccountStatusCommand)(nil)
	_ gocmd.Commander[RecordDepositMessage]       = (*RecordDepositCommand)(nil)
	_ gocmd.Commander[ReconcilePendingMessage]    = (*ReconcilePendingCommand)(nil)
)
