package command

import (
	"strings"

	"github.com/goliatone/go-ledger/core"
)

const (
	TypeExecuteTransfer     = "ledger.command.transfer.execute"
	TypeOpenAccount         = "ledger.command.account.open"
	TypeUpdateAccountStatus = "ledger.command.account.update_status"
	TypeRecordDeposit       = "ledger.command.deposit.record"
	TypeReconcilePending    = "ledger.command.reconciliation.run"
)

type ExecuteTransferMessage struct {
	Request core.TransferRequest
}

func (ExecuteTransferMessage) Type() string { return TypeExecuteTransfer }

func (m ExecuteTransferMessage) Validate() error {
	if strings.TrimSpace(m.Request.OwnerID) == "" {
		return commandValidationError("owner_id", "owner id is required")
	}
	if strings.TrimSpace(m.Request.SourceAccountID) == "" {
		return commandValidationError("source_account_id", "source account id is required")
	}
	if m.Request.Amount <= 0 {
		return commandValidationError("amount", "amount must be positive")
	}
	if strings.TrimSpace(m.Request.IdempotencyKey) == "" {
		return commandValidationError("idempotency_key", "idempotency key is required")
	}
	if m.Request.Details == nil {
		return commandValidationError("details", "transfer details are required")
	}
	return nil
}

type OpenAccountMessage struct {
	Request core.OpenAccountRequest
}

func (OpenAccountMessage) Type() string { return TypeOpenAccount }

func (m OpenAccountMessage) Validate() error {
	if strings.TrimSpace(m.Request.OwnerID) == "" {
		return commandValidationError("owner_id", "owner id is required")
	}
	if err := m.Request.Kind.Validate(); err != nil {
		return commandValidationError("kind", err.Error())
	}
	return nil
}

type UpdateAccountStatusMessage struct {
	OwnerID   string
	AccountID string
	Status    core.AccountStatus
}

func (UpdateAccountStatusMessage) Type() string { return TypeUpdateAccountStatus }

func (m UpdateAccountStatusMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return commandValidationError("owner_id", "owner id is required")
	}
	if strings.TrimSpace(m.AccountID) == "" {
		return commandValidationError("account_id", "account id is required")
	}
	if strings.TrimSpace(string(m.Status)) == "" {
		return commandValidationError("status", "status is required")
	}
	return nil
}

type RecordDepositMessage struct {
	Request core.DepositRequest
}

func (RecordDepositMessage) Type() string { return TypeRecordDeposit }

func (m RecordDepositMessage) Validate() error {
	if strings.TrimSpace(m.Request.OwnerID) == "" {
		return commandValidationError("owner_id", "owner id is required")
	}
	if strings.TrimSpace(m.Request.AccountID) == "" {
		return commandValidationError("account_id", "account id is required")
	}
	if m.Request.Amount <= 0 {
		return commandValidationError("amount", "amount must be positive")
	}
	return nil
}

type ReconcilePendingMessage struct {
	Limit int
}

func (ReconcilePendingMessage) Type() string { return TypeReconcilePending }

func (ReconcilePendingMessage) Validate() error { return nil }
