package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Service is the transfer engine. It orchestrates every balance mutation as a
// single atomic unit and is the only component allowed to move value.
type Service struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	persistenceClient any
	repositoryFactory any
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	accountStore      AccountStore
	entryStore        EntryStore
	idempotencyStore  IdempotencyStore
	transferStore     TransferStore
}

type ServiceDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	MetricsRecorder   MetricsRecorder
	ErrorFactory      ErrorFactory
	ErrorMapper       ErrorMapper
	PersistenceClient any
	RepositoryFactory any
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	AccountStore      AccountStore
	EntryStore        EntryStore
	IdempotencyStore  IdempotencyStore
	TransferStore     TransferStore
}

// RepositoryStoreFactory lets wiring hand the service a lazily-built store
// provider instead of concrete stores.
type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("ledger", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("ledger"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if storesMissing(builder) && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			provider, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			adoptStoreProvider(&builder, provider)
		} else if provider, ok := builder.repositoryFactory.(StoreProvider); ok {
			adoptStoreProvider(&builder, provider)
		}
	}
	if builder.transferStore == nil && builder.repositoryFactory != nil {
		if provider, ok := builder.repositoryFactory.(interface{ TransferStore() TransferStore }); ok {
			builder.transferStore = provider.TransferStore()
		}
	}

	return &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		persistenceClient: builder.persistenceClient,
		repositoryFactory: builder.repositoryFactory,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		accountStore:      builder.accountStore,
		entryStore:        builder.entryStore,
		idempotencyStore:  builder.idempotencyStore,
		transferStore:     builder.transferStore,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Service, error) {
	return NewService(cfg, options...)
}

func storesMissing(builder serviceBuilder) bool {
	return builder.accountStore == nil || builder.entryStore == nil || builder.idempotencyStore == nil
}

func adoptStoreProvider(builder *serviceBuilder, provider StoreProvider) {
	if provider == nil {
		return
	}
	if builder.accountStore == nil {
		builder.accountStore = provider.AccountStore()
	}
	if builder.entryStore == nil {
		builder.entryStore = provider.EntryStore()
	}
	if builder.idempotencyStore == nil {
		builder.idempotencyStore = provider.IdempotencyStore()
	}
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:            s.logger,
		LoggerProvider:    s.loggerProvider,
		MetricsRecorder:   s.metricsRecorder,
		ErrorFactory:      s.errorFactory,
		ErrorMapper:       s.errorMapper,
		PersistenceClient: s.persistenceClient,
		RepositoryFactory: s.repositoryFactory,
		ConfigProvider:    s.configProvider,
		OptionsResolver:   s.optionsResolver,
		AccountStore:      s.accountStore,
		EntryStore:        s.entryStore,
		IdempotencyStore:  s.idempotencyStore,
		TransferStore:     s.transferStore,
	}
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

// ExecuteTransfer runs the transfer algorithm as one atomic unit: validate,
// debit, credit (internal), append the log entry, claim the idempotency key.
// Either every step is durably applied or none is; a replayed idempotency key
// returns the original result without mutating anything.
func (s *Service) ExecuteTransfer(ctx context.Context, req TransferRequest) (result TransferResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"owner_id":   req.OwnerID,
		"account_id": req.SourceAccountID,
	}
	if req.Details != nil {
		fields["transfer_kind"] = string(req.Details.Kind())
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "transfer", err, fields)
	}()

	if s == nil || s.accountStore == nil || s.entryStore == nil || s.idempotencyStore == nil {
		err = s.mapError(fmt.Errorf("core: transfer engine stores are not configured"))
		return TransferResult{}, err
	}

	// Validation order is fixed so error reporting is deterministic:
	// shape -> ownership -> funds/status -> kind payload.
	if err = req.Validate(s.config.Transfers); err != nil {
		err = s.mapError(err)
		return TransferResult{}, err
	}
	req.Description = NormalizeDescription(req.Description)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)

	if replayed, found, replayErr := s.findReplay(ctx, req); replayErr != nil {
		err = s.mapError(replayErr)
		return TransferResult{}, err
	} else if found {
		return replayed, nil
	}

	source, getErr := s.accountStore.Get(ctx, req.SourceAccountID)
	if getErr != nil {
		err = s.mapError(getErr)
		return TransferResult{}, err
	}
	if source.OwnerID != req.OwnerID {
		err = s.forbidden("account does not belong to the caller")
		return TransferResult{}, err
	}
	if source.Status != AccountStatusActive {
		err = s.accountInactive(source)
		return TransferResult{}, err
	}
	if !source.CanDebit(req.Amount) {
		err = s.insufficientFunds(source, req.Amount)
		return TransferResult{}, err
	}

	destinationID, resolveErr := s.resolveDestination(ctx, source, req)
	if resolveErr != nil {
		err = s.mapError(resolveErr)
		return TransferResult{}, err
	}

	entry := s.entryInputForRequest(req, destinationID)

	if s.transferStore != nil {
		result, err = s.transferStore.ExecuteTransfer(ctx, AtomicTransferInput{
			Request:              req,
			SourceAccount:        source,
			DestinationAccountID: destinationID,
			Entry:                entry,
		})
		if err != nil {
			err = s.mapError(err)
			return TransferResult{}, err
		}
		return result, nil
	}

	result, err = s.executeCompensated(ctx, req, source, destinationID, entry)
	if err != nil {
		return TransferResult{}, err
	}
	return result, nil
}

func (s *Service) findReplay(ctx context.Context, req TransferRequest) (TransferResult, bool, error) {
	claim, err := s.idempotencyStore.Find(ctx, req.OwnerID, req.SourceAccountID, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, ErrIdempotencyClaimNotFound) {
			return TransferResult{}, false, nil
		}
		return TransferResult{}, false, err
	}
	if strings.TrimSpace(claim.EntryID) == "" {
		return TransferResult{}, false, nil
	}
	entry, err := s.entryStore.Get(ctx, claim.EntryID)
	if err != nil {
		return TransferResult{}, false, err
	}
	return TransferResult{
		Entry:                entry,
		SourceAccountID:      entry.AccountID,
		DestinationAccountID: entry.CounterpartyAccountID,
		Replayed:             true,
	}, true, nil
}

func (s *Service) resolveDestination(ctx context.Context, source Account, req TransferRequest) (string, error) {
	details, ok := req.Details.(InternalTransfer)
	if !ok {
		return "", nil
	}
	destination, err := s.accountStore.GetByNumber(ctx, strings.TrimSpace(details.DestinationNumber))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", newLedgerError(
				fmt.Sprintf("core: destination account %q not found", details.DestinationNumber),
				goerrors.CategoryNotFound,
				LedgerErrorNotFound,
			)
		}
		return "", err
	}
	if destination.ID == source.ID && !s.config.Transfers.AllowSelfTransfer {
		return "", newLedgerError(
			"core: destination_number resolves to the source account",
			goerrors.CategoryBadInput,
			LedgerErrorValidation,
		)
	}
	if destination.Status != AccountStatusActive {
		return "", newLedgerError(
			fmt.Sprintf("core: destination account %q is not active", destination.Number),
			goerrors.CategoryBadInput,
			LedgerErrorValidation,
		)
	}
	return destination.ID, nil
}

func (s *Service) entryInputForRequest(req TransferRequest, destinationID string) AppendEntryInput {
	entry := AppendEntryInput{
		OwnerID:     req.OwnerID,
		AccountID:   req.SourceAccountID,
		Kind:        req.EntryKind(),
		Amount:      req.Amount,
		Description: req.Description,
		Status:      EntryStatusCompleted,
	}
	switch details := req.Details.(type) {
	case InternalTransfer:
		entry.RecipientNumber = strings.TrimSpace(details.DestinationNumber)
		entry.CounterpartyAccountID = destinationID
	case ExternalTransfer:
		entry.RecipientNumber = strings.TrimSpace(details.DestinationNumber)
		entry.RecipientName = strings.TrimSpace(details.RecipientName)
	case CryptoTransfer:
		entry.AssetSymbol = strings.ToUpper(strings.TrimSpace(details.AssetSymbol))
		entry.RecipientAddress = strings.TrimSpace(details.RecipientAddress)
		entry.NetworkFee = details.NetworkFee
		entry.Network = strings.TrimSpace(details.Network)
	}
	return entry
}

// executeCompensated is the fallback protocol for stores without a
// transactional fast path: debit, credit, append, claim, with a reversing
// credit on any post-debit failure. A reversal that cannot be applied after
// the configured attempts escalates to reconciliation_pending instead of
// being silently lost.
func (s *Service) executeCompensated(
	ctx context.Context,
	req TransferRequest,
	source Account,
	destinationID string,
	entry AppendEntryInput,
) (TransferResult, error) {
	if _, err := s.accountStore.AdjustBalance(ctx, source.ID, -req.Amount); err != nil {
		if errors.Is(err, ErrBalanceFloorViolated) {
			return TransferResult{}, s.insufficientFunds(source, req.Amount)
		}
		return TransferResult{}, s.mapError(err)
	}

	if destinationID != "" {
		if _, err := s.accountStore.AdjustBalance(ctx, destinationID, req.Amount); err != nil {
			return TransferResult{}, s.reverseDebit(ctx, req, source, entry, err)
		}
	}

	// Append as pending and promote after the claim lands. A losing
	// concurrent duplicate can then close its entry as failed instead of
	// mutating a terminal one.
	pending := entry
	pending.Status = EntryStatusPending
	created, err := s.entryStore.Append(ctx, pending)
	if err != nil {
		if destinationID != "" {
			if _, creditErr := s.accountStore.AdjustBalance(ctx, destinationID, -req.Amount); creditErr != nil {
				s.logError(ctx, "credit reversal failed after append failure", map[string]any{
					"account_id": destinationID,
					"error":      creditErr.Error(),
				})
			}
		}
		return TransferResult{}, s.reverseDebit(ctx, req, source, entry, err)
	}

	claim := IdempotencyClaim{
		OwnerID:         req.OwnerID,
		SourceAccountID: req.SourceAccountID,
		Key:             req.IdempotencyKey,
		EntryID:         created.ID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.idempotencyStore.Claim(ctx, claim); err != nil {
		if errors.Is(err, ErrIdempotencyKeyAlreadyClaimed) {
			// A concurrent duplicate won the claim. Undo our mutation and
			// hand back the original result.
			if destinationID != "" {
				if _, creditErr := s.accountStore.AdjustBalance(ctx, destinationID, -req.Amount); creditErr != nil {
					s.logError(ctx, "duplicate-claim credit reversal failed", map[string]any{
						"account_id": destinationID,
						"error":      creditErr.Error(),
					})
				}
			}
			if _, debitErr := s.accountStore.AdjustBalance(ctx, source.ID, req.Amount); debitErr != nil {
				s.logError(ctx, "duplicate-claim debit reversal failed", map[string]any{
					"account_id": source.ID,
					"error":      debitErr.Error(),
				})
			}
			if updateErr := s.entryStore.UpdateStatus(ctx, created.ID, EntryStatusFailed); updateErr != nil {
				s.logError(ctx, "duplicate-claim entry status update failed", map[string]any{
					"entry_id": created.ID,
					"error":    updateErr.Error(),
				})
			}
			replayed, found, replayErr := s.findReplay(ctx, req)
			if replayErr != nil || !found {
				return TransferResult{}, s.mapError(err)
			}
			return replayed, nil
		}
		return TransferResult{}, s.reverseAppliedTransfer(ctx, req, source, destinationID, created.ID, err)
	}

	if err := s.promoteEntry(ctx, created.ID); err != nil {
		s.logError(ctx, "entry completion status update failed", map[string]any{
			"entry_id": created.ID,
			"error":    err.Error(),
		})
	} else {
		created.Status = EntryStatusCompleted
	}

	return TransferResult{
		Entry:                created,
		SourceAccountID:      source.ID,
		DestinationAccountID: destinationID,
	}, nil
}

// reverseDebit issues the compensating credit for a debit whose follow-up
// step failed. The reversal is retried; exhaustion escalates to a
// reconciliation_pending entry rather than a silent loss or a fake success.
func (s *Service) reverseDebit(
	ctx context.Context,
	req TransferRequest,
	source Account,
	entry AppendEntryInput,
	cause error,
) error {
	attempts := s.config.Transfers.ReversalMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var reversalErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if _, reversalErr = s.accountStore.AdjustBalance(ctx, source.ID, req.Amount); reversalErr == nil {
			failed := entry
			failed.Status = EntryStatusFailed
			if _, appendErr := s.entryStore.Append(ctx, failed); appendErr != nil {
				s.logError(ctx, "failed-entry append after reversal", map[string]any{
					"account_id": source.ID,
					"error":      appendErr.Error(),
				})
			}
			return s.mapError(cause)
		}
	}

	pending := entry
	pending.Status = EntryStatusReconciliationPending
	if _, appendErr := s.entryStore.Append(ctx, pending); appendErr != nil {
		s.logError(ctx, "reconciliation entry append failed", map[string]any{
			"account_id": source.ID,
			"error":      appendErr.Error(),
		})
	}
	return newLedgerError(
		fmt.Sprintf("core: transfer reconciliation pending: %v (reversal: %v)", cause, reversalErr),
		goerrors.CategoryConflict,
		LedgerErrorReconciliationPending,
	)
}

// reverseAppliedTransfer backs out a transfer whose pending entry is already
// on the log. The destination credit and the source debit are undone and the
// entry is closed as failed; a debit reversal that cannot be applied after
// the configured attempts escalates the entry to reconciliation_pending so
// the sweep picks it up.
func (s *Service) reverseAppliedTransfer(
	ctx context.Context,
	req TransferRequest,
	source Account,
	destinationID string,
	entryID string,
	cause error,
) error {
	if destinationID != "" {
		if _, creditErr := s.accountStore.AdjustBalance(ctx, destinationID, -req.Amount); creditErr != nil {
			s.logError(ctx, "credit reversal failed after claim failure", map[string]any{
				"account_id": destinationID,
				"error":      creditErr.Error(),
			})
		}
	}

	attempts := s.config.Transfers.ReversalMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var reversalErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if _, reversalErr = s.accountStore.AdjustBalance(ctx, source.ID, req.Amount); reversalErr == nil {
			if updateErr := s.entryStore.UpdateStatus(ctx, entryID, EntryStatusFailed); updateErr != nil {
				s.logError(ctx, "failed-entry status update after reversal", map[string]any{
					"entry_id": entryID,
					"error":    updateErr.Error(),
				})
			}
			return s.mapError(cause)
		}
	}

	if updateErr := s.entryStore.UpdateStatus(ctx, entryID, EntryStatusReconciliationPending); updateErr != nil {
		s.logError(ctx, "reconciliation status update failed", map[string]any{
			"entry_id": entryID,
			"error":    updateErr.Error(),
		})
	}
	return newLedgerError(
		fmt.Sprintf("core: transfer reconciliation pending: %v (reversal: %v)", cause, reversalErr),
		goerrors.CategoryConflict,
		LedgerErrorReconciliationPending,
	)
}

// promoteEntry retries the pending-to-completed transition so a transient
// status write failure does not strand a claimed transfer at pending.
func (s *Service) promoteEntry(ctx context.Context, entryID string) error {
	attempts := s.config.Transfers.ReversalMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = s.entryStore.UpdateStatus(ctx, entryID, EntryStatusCompleted); err == nil {
			return nil
		}
	}
	return err
}

func (s *Service) forbidden(message string) error {
	return newLedgerError("core: "+message, goerrors.CategoryAuthz, LedgerErrorForbidden)
}

func (s *Service) accountInactive(account Account) error {
	return newLedgerError(
		fmt.Sprintf("core: account %q is %s, not active", account.Number, account.Status),
		goerrors.CategoryOperation,
		LedgerErrorAccountInactive,
	)
}

func (s *Service) insufficientFunds(account Account, amount int64) error {
	return newLedgerError(
		fmt.Sprintf("core: insufficient funds: balance %d, floor %d, debit %d", account.Balance, account.Floor(), amount),
		goerrors.CategoryConflict,
		LedgerErrorInsufficientFunds,
	)
}

type OpenAccountRequest struct {
	OwnerID        string
	Kind           AccountKind
	Number         string
	InitialBalance int64
	CreditLimit    int64
}

// OpenAccount creates a new account for the caller. Account numbers are
// generated when the provisioning collaborator does not supply one.
func (s *Service) OpenAccount(ctx context.Context, req OpenAccountRequest) (account Account, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": req.OwnerID}
	defer func() {
		s.observeOperation(ctx, startedAt, "open_account", err, fields)
	}()

	if s == nil || s.accountStore == nil {
		err = s.mapError(fmt.Errorf("core: account store is not configured"))
		return Account{}, err
	}
	if strings.TrimSpace(req.OwnerID) == "" {
		err = s.mapError(fieldRequired("owner_id"))
		return Account{}, err
	}
	if err = req.Kind.Validate(); err != nil {
		err = s.mapError(err)
		return Account{}, err
	}
	if req.InitialBalance < 0 {
		err = s.mapError(fieldInvalid("initial_balance", "must not be negative"))
		return Account{}, err
	}
	if req.CreditLimit < 0 {
		err = s.mapError(fieldInvalid("credit_limit", "must not be negative"))
		return Account{}, err
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		number = GenerateAccountNumber()
	}

	account, err = s.accountStore.Create(ctx, CreateAccountInput{
		OwnerID:        strings.TrimSpace(req.OwnerID),
		Kind:           req.Kind,
		Number:         number,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		Status:         AccountStatusActive,
	})
	if err != nil {
		err = s.mapError(err)
		return Account{}, err
	}
	fields["account_id"] = account.ID
	return account, nil
}

// UpdateAccountStatus applies an administrative status change. Accounts are
// never deleted once entries reference them; deactivation is the only exit.
func (s *Service) UpdateAccountStatus(ctx context.Context, ownerID, accountID string, status AccountStatus) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": ownerID, "account_id": accountID, "status": string(status)}
	defer func() {
		s.observeOperation(ctx, startedAt, "update_account_status", err, fields)
	}()

	if s == nil || s.accountStore == nil {
		err = s.mapError(fmt.Errorf("core: account store is not configured"))
		return err
	}
	account, getErr := s.accountStore.Get(ctx, accountID)
	if getErr != nil {
		err = s.mapError(getErr)
		return err
	}
	if account.OwnerID != ownerID {
		err = s.forbidden("account does not belong to the caller")
		return err
	}
	if transitionErr := account.TransitionTo(status, time.Now().UTC()); transitionErr != nil {
		err = s.mapError(transitionErr)
		return err
	}
	if updateErr := s.accountStore.UpdateStatus(ctx, accountID, status); updateErr != nil {
		err = s.mapError(updateErr)
		return err
	}
	return nil
}

type DepositRequest struct {
	OwnerID     string
	AccountID   string
	Amount      int64
	Description string
}

// RecordDeposit credits an account and appends the matching deposit entry.
func (s *Service) RecordDeposit(ctx context.Context, req DepositRequest) (entry Entry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner_id": req.OwnerID, "account_id": req.AccountID, "entry_kind": string(EntryKindDeposit)}
	defer func() {
		s.observeOperation(ctx, startedAt, "deposit", err, fields)
	}()

	if s == nil || s.accountStore == nil || s.entryStore == nil {
		err = s.mapError(fmt.Errorf("core: deposit stores are not configured"))
		return Entry{}, err
	}
	if req.Amount <= 0 {
		err = s.mapError(fieldInvalid("amount", "must be positive"))
		return Entry{}, err
	}
	account, getErr := s.accountStore.Get(ctx, req.AccountID)
	if getErr != nil {
		err = s.mapError(getErr)
		return Entry{}, err
	}
	if account.OwnerID != req.OwnerID {
		err = s.forbidden("account does not belong to the caller")
		return Entry{}, err
	}
	if account.Status != AccountStatusActive {
		err = s.accountInactive(account)
		return Entry{}, err
	}

	if _, adjustErr := s.accountStore.AdjustBalance(ctx, req.AccountID, req.Amount); adjustErr != nil {
		err = s.mapError(adjustErr)
		return Entry{}, err
	}
	entry, err = s.entryStore.Append(ctx, AppendEntryInput{
		OwnerID:     req.OwnerID,
		AccountID:   req.AccountID,
		Kind:        EntryKindDeposit,
		Amount:      req.Amount,
		Description: NormalizeDescription(req.Description),
		Status:      EntryStatusCompleted,
	})
	if err != nil {
		err = s.mapError(err)
		return Entry{}, err
	}
	return entry, nil
}

// GenerateAccountNumber derives a 12-digit human-facing account number from a
// fresh UUID. Uniqueness is ultimately enforced by the store constraint.
func GenerateAccountNumber() string {
	id := uuid.New()
	digits := make([]byte, 12)
	for i := range digits {
		digits[i] = '0' + id[i]%10
	}
	return string(digits)
}
