package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-ledger/core"
)

// MutatingService is the slice of the ledger engine commands mutate through.
type MutatingService interface {
	ExecuteTransfer(ctx context.Context, req core.TransferRequest) (core.TransferResult, error)
	OpenAccount(ctx context.Context, req core.OpenAccountRequest) (core.Account, error)
	UpdateAccountStatus(ctx context.Context, ownerID, accountID string, status core.AccountStatus) error
	RecordDeposit(ctx context.Context, req core.DepositRequest) (core.Entry, error)
	ReconcilePendingEntries(ctx context.Context, limit int) (core.ReconciliationReport, error)
}

type ExecuteTransferCommand struct {
	service MutatingService
}

func NewExecuteTransferCommand(service MutatingService) *ExecuteTransferCommand {
	return &ExecuteTransferCommand{service: service}
}

func (c *ExecuteTransferCommand) Execute(ctx context.Context, msg ExecuteTransferMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: transfer service is required")
	}
	out, err := c.service.ExecuteTransfer(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type OpenAccountCommand struct {
	service MutatingService
}

func NewOpenAccountCommand(service MutatingService) *OpenAccountCommand {
	return &OpenAccountCommand{service: service}
}

func (c *OpenAccountCommand) Execute(ctx context.Context, msg OpenAccountMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: account service is required")
	}
	out, err := c.service.OpenAccount(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateAccountStatusCommand struct {
	service MutatingService
}

func NewUpdateAccountStatusCommand(service MutatingService) *UpdateAccountStatusCommand {
	return &UpdateAccountStatusCommand{service: service}
}

func (c *UpdateAccountStatusCommand) Execute(ctx context.Context, msg UpdateAccountStatusMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: account status service is required")
	}
	return c.service.UpdateAccountStatus(ctx, msg.OwnerID, msg.AccountID, msg.Status)
}

type RecordDepositCommand struct {
	service MutatingService
}

func NewRecordDepositCommand(service MutatingService) *RecordDepositCommand {
	return &RecordDepositCommand{service: service}
}

func (c *RecordDepositCommand) Execute(ctx context.Context, msg RecordDepositMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: deposit service is required")
	}
	out, err := c.service.RecordDeposit(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ReconcilePendingCommand struct {
	service MutatingService
}

func NewReconcilePendingCommand(service MutatingService) *ReconcilePendingCommand {
	return &ReconcilePendingCommand{service: service}
}

func (c *ReconcilePendingCommand) Execute(ctx context.Context, msg ReconcilePendingMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: reconciliation service is required")
	}
	out, err := c.service.ReconcilePendingEntries(ctx, msg.Limit)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
