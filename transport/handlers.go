package transport

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-ledger/core"
)

type transferPayload struct {
	SourceAccountID string          `json:"source_account_id"`
	Amount          int64           `json:"amount"`
	Description     string          `json:"description"`
	IdempotencyKey  string          `json:"idempotency_key"`
	Kind            string          `json:"kind"`
	Details         json.RawMessage `json:"details"`
}

type internalDetailsPayload struct {
	DestinationNumber string `json:"destination_number"`
}

type externalDetailsPayload struct {
	DestinationNumber string `json:"destination_number"`
	RecipientName     string `json:"recipient_name"`
}

type cryptoDetailsPayload struct {
	AssetSymbol      string `json:"asset_symbol"`
	RecipientAddress string `json:"recipient_address"`
	NetworkFee       int64  `json:"network_fee"`
	Network          string `json:"network"`
}

func (p transferPayload) details() (core.TransferDetails, error) {
	kind := core.TransferKind(strings.ToLower(strings.TrimSpace(p.Kind)))
	switch kind {
	case core.TransferKindInternal:
		var details internalDetailsPayload
		if err := decodeDetails(p.Details, &details); err != nil {
			return nil, err
		}
		return core.InternalTransfer{DestinationNumber: details.DestinationNumber}, nil
	case core.TransferKindExternal:
		var details externalDetailsPayload
		if err := decodeDetails(p.Details, &details); err != nil {
			return nil, err
		}
		return core.ExternalTransfer{
			DestinationNumber: details.DestinationNumber,
			RecipientName:     details.RecipientName,
		}, nil
	case core.TransferKindCrypto:
		var details cryptoDetailsPayload
		if err := decodeDetails(p.Details, &details); err != nil {
			return nil, err
		}
		return core.CryptoTransfer{
			AssetSymbol:      details.AssetSymbol,
			RecipientAddress: details.RecipientAddress,
			NetworkFee:       details.NetworkFee,
			Network:          details.Network,
		}, nil
	default:
		return nil, badRequestError("transport: unknown transfer kind")
	}
}

func decodeDetails(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return badRequestError("transport: transfer details are required")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return badRequestError("transport: invalid transfer details")
	}
	return nil
}

func (s *Server) handleExecuteTransfer(c *fiber.Ctx) error {
	var payload transferPayload
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, badRequestError("transport: invalid request body"))
	}

	idempotencyKey := strings.TrimSpace(c.Get("Idempotency-Key"))
	if idempotencyKey == "" {
		idempotencyKey = strings.TrimSpace(payload.IdempotencyKey)
	}

	details, err := payload.details()
	if err != nil {
		return renderError(c, err)
	}

	result, err := s.service.ExecuteTransfer(c.Context(), core.TransferRequest{
		OwnerID:         ownerFromContext(c),
		SourceAccountID: payload.SourceAccountID,
		Amount:          payload.Amount,
		Description:     payload.Description,
		IdempotencyKey:  idempotencyKey,
		Details:         details,
	})
	if err != nil {
		return renderError(c, err)
	}

	status := fiber.StatusCreated
	if result.Replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(newTransferResponse(result))
}

type openAccountPayload struct {
	Kind           string `json:"kind"`
	Number         string `json:"number"`
	InitialBalance int64  `json:"initial_balance"`
	CreditLimit    int64  `json:"credit_limit"`
}

func (s *Server) handleOpenAccount(c *fiber.Ctx) error {
	var payload openAccountPayload
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, badRequestError("transport: invalid request body"))
	}

	account, err := s.service.OpenAccount(c.Context(), core.OpenAccountRequest{
		OwnerID:        ownerFromContext(c),
		Kind:           core.AccountKind(strings.ToLower(strings.TrimSpace(payload.Kind))),
		Number:         payload.Number,
		InitialBalance: payload.InitialBalance,
		CreditLimit:    payload.CreditLimit,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newAccountResponse(account))
}

func (s *Server) handleListAccounts(c *fiber.Ctx) error {
	accounts, err := s.service.ListAccounts(c.Context(), ownerFromContext(c))
	if err != nil {
		return renderError(c, err)
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, newAccountResponse(account))
	}
	return c.JSON(fiber.Map{"accounts": out})
}

func (s *Server) handleGetAccount(c *fiber.Ctx) error {
	account, err := s.service.GetAccount(c.Context(), ownerFromContext(c), c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(newAccountResponse(account))
}

type updateStatusPayload struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateAccountStatus(c *fiber.Ctx) error {
	var payload updateStatusPayload
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, badRequestError("transport: invalid request body"))
	}

	status := core.AccountStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	if err := s.service.UpdateAccountStatus(c.Context(), ownerFromContext(c), c.Params("id"), status); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"status": string(status)})
}

type depositPayload struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func (s *Server) handleRecordDeposit(c *fiber.Ctx) error {
	var payload depositPayload
	if err := c.BodyParser(&payload); err != nil {
		return renderError(c, badRequestError("transport: invalid request body"))
	}

	entry, err := s.service.RecordDeposit(c.Context(), core.DepositRequest{
		OwnerID:     ownerFromContext(c),
		AccountID:   c.Params("id"),
		Amount:      payload.Amount,
		Description: payload.Description,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newEntryResponse(entry))
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return renderError(c, badRequestError("transport: limit must be a non-negative integer"))
		}
		limit = parsed
	}

	entries, err := s.service.ListEntries(c.Context(), ownerFromContext(c), limit)
	if err != nil {
		return renderError(c, err)
	}
	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, newEntryResponse(entry))
	}
	return c.JSON(fiber.Map{"transactions": out})
}

func (s *Server) handleDashboardStats(c *fiber.Ctx) error {
	stats, err := s.service.DashboardStats(c.Context(), ownerFromContext(c), time.Now().UTC())
	if err != nil {
		return renderError(c, err)
	}

	recent := make([]entryResponse, 0, len(stats.RecentEntries))
	for _, entry := range stats.RecentEntries {
		recent = append(recent, newEntryResponse(entry))
	}
	return c.JSON(dashboardResponse{
		TotalBalance:  stats.TotalBalance,
		AccountCount:  stats.AccountCount,
		MonthlySpend:  stats.MonthlySpend,
		RecentEntries: recent,
	})
}

type accountResponse struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	OwnerID     string    `json:"owner_id"`
	Kind        string    `json:"kind"`
	Balance     int64     `json:"balance"`
	CreditLimit int64     `json:"credit_limit,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newAccountResponse(account core.Account) accountResponse {
	return accountResponse{
		ID:          account.ID,
		Number:      account.Number,
		OwnerID:     account.OwnerID,
		Kind:        string(account.Kind),
		Balance:     account.Balance,
		CreditLimit: account.CreditLimit,
		Status:      string(account.Status),
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

type entryResponse struct {
	ID                    string    `json:"id"`
	AccountID             string    `json:"account_id"`
	Kind                  string    `json:"kind"`
	Amount                int64     `json:"amount"`
	Description           string    `json:"description,omitempty"`
	Status                string    `json:"status"`
	RecipientNumber       string    `json:"recipient_number,omitempty"`
	RecipientName         string    `json:"recipient_name,omitempty"`
	CounterpartyAccountID string    `json:"counterparty_account_id,omitempty"`
	AssetSymbol           string    `json:"asset_symbol,omitempty"`
	RecipientAddress      string    `json:"recipient_address,omitempty"`
	NetworkFee            int64     `json:"network_fee,omitempty"`
	Network               string    `json:"network,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

func newEntryResponse(entry core.Entry) entryResponse {
	return entryResponse{
		ID:                    entry.ID,
		AccountID:             entry.AccountID,
		Kind:                  string(entry.Kind),
		Amount:                entry.Amount,
		Description:           entry.Description,
		Status:                string(entry.Status),
		RecipientNumber:       entry.RecipientNumber,
		RecipientName:         entry.RecipientName,
		CounterpartyAccountID: entry.CounterpartyAccountID,
		AssetSymbol:           entry.AssetSymbol,
		RecipientAddress:      entry.RecipientAddress,
		NetworkFee:            entry.NetworkFee,
		Network:               entry.Network,
		CreatedAt:             entry.CreatedAt,
	}
}

type transferResponse struct {
	Entry                entryResponse `json:"entry"`
	SourceAccountID      string        `json:"source_account_id"`
	DestinationAccountID string        `json:"destination_account_id,omitempty"`
	Replayed             bool          `json:"replayed"`
}

func newTransferResponse(result core.TransferResult) transferResponse {
	return transferResponse{
		Entry:                newEntryResponse(result.Entry),
		SourceAccountID:      result.SourceAccountID,
		DestinationAccountID: result.DestinationAccountID,
		Replayed:             result.Replayed,
	}
}

type dashboardResponse struct {
	TotalBalance  int64           `json:"total_balance"`
	AccountCount  int             `json:"account_count"`
	MonthlySpend  int64           `json:"monthly_spend"`
	RecentEntries []entryResponse `json:"recent_transactions"`
}
