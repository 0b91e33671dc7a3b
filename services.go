package ledger

import "github.com/goliatone/go-ledger/core"

type Config = core.Config

type TransferConfig = core.TransferConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type AccountStore = core.AccountStore
type EntryStore = core.EntryStore
type IdempotencyStore = core.IdempotencyStore
type TransferStore = core.TransferStore
type StoreProvider = core.StoreProvider

type Account = core.Account
type AccountKind = core.AccountKind
type AccountStatus = core.AccountStatus
type Entry = core.Entry
type EntryKind = core.EntryKind
type EntryStatus = core.EntryStatus

type TransferRequest = core.TransferRequest
type TransferResult = core.TransferResult
type TransferDetails = core.TransferDetails
type InternalTransfer = core.InternalTransfer
type ExternalTransfer = core.ExternalTransfer
type CryptoTransfer = core.CryptoTransfer

type OpenAccountRequest = core.OpenAccountRequest
type DepositRequest = core.DepositRequest
type ReconciliationReport = core.ReconciliationReport
type DashboardStats = core.DashboardStats
type TimeWindow = core.TimeWindow

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithAccountStore      = core.WithAccountStore
	WithEntryStore        = core.WithEntryStore
	WithIdempotencyStore  = core.WithIdempotencyStore
	WithTransferStore     = core.WithTransferStore
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
