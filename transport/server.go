package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-ledger/core"
	glog "github.com/goliatone/go-logger/glog"
)

// LedgerService is the slice of the ledger engine the HTTP surface exposes.
type LedgerService interface {
	ExecuteTransfer(ctx context.Context, req core.TransferRequest) (core.TransferResult, error)
	OpenAccount(ctx context.Context, req core.OpenAccountRequest) (core.Account, error)
	UpdateAccountStatus(ctx context.Context, ownerID, accountID string, status core.AccountStatus) error
	RecordDeposit(ctx context.Context, req core.DepositRequest) (core.Entry, error)
	GetAccount(ctx context.Context, ownerID, accountID string) (core.Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]core.Account, error)
	ListEntries(ctx context.Context, ownerID string, limit int) ([]core.Entry, error)
	DashboardStats(ctx context.Context, ownerID string, now time.Time) (core.DashboardStats, error)
}

type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c ServerConfig) withDefaults() ServerConfig {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = ":8080"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 15 * time.Second
	}
	return c
}

type Server struct {
	config  ServerConfig
	app     *fiber.App
	service LedgerService
	logger  core.Logger
}

func NewServer(config ServerConfig, service LedgerService, logger core.Logger) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("transport: ledger service is required")
	}
	config = config.withDefaults()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           config.ReadTimeout,
		WriteTimeout:          config.WriteTimeout,
		ErrorHandler:          renderFiberError,
	})

	server := &Server{
		config:  config,
		app:     app,
		service: service,
		logger:  glog.Ensure(logger),
	}
	server.registerRoutes()
	return server, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/v1", requireOwnerIdentity())
	api.Post("/transfers", s.handleExecuteTransfer)
	api.Post("/accounts", s.handleOpenAccount)
	api.Get("/accounts", s.handleListAccounts)
	api.Get("/accounts/:id", s.handleGetAccount)
	api.Patch("/accounts/:id/status", s.handleUpdateAccountStatus)
	api.Post("/accounts/:id/deposits", s.handleRecordDeposit)
	api.Get("/transactions", s.handleListEntries)
	api.Get("/dashboard", s.handleDashboardStats)
}

// App exposes the underlying fiber application for tests and composition.
func (s *Server) App() *fiber.App {
	if s == nil {
		return nil
	}
	return s.app
}

func (s *Server) Listen() error {
	if s == nil || s.app == nil {
		return fmt.Errorf("transport: server is not initialized")
	}
	s.logger.Info("http server listening", "address", s.config.Address)
	return s.app.Listen(s.config.Address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.app == nil {
		return nil
	}
	if ctx == nil {
		return s.app.Shutdown()
	}
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
